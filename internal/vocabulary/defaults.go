package vocabulary

// Default builds the built-in movement catalog. A fresh catalog is
// constructed on every call so no shared mutable state leaks out;
// caller-supplied catalogs compose with it via MergedWith.
func Default() *Catalog {
	return NewCatalog(defaultEntries())
}

// Competition counts are hand-maintained appearance tallies from the last
// seasons of competitive programming; they drive the skill priority tiers.
func defaultEntries() []Entry {
	return []Entry{
		// weightlifting
		{Key: "back_squat", DisplayName: "Back Squat", Modality: ModalityWeightlifting, Category: "squat", CompetitionCount: 5},
		{Key: "front_squat", DisplayName: "Front Squat", Modality: ModalityWeightlifting, Category: "squat", CompetitionCount: 7},
		{Key: "overhead_squat", DisplayName: "Overhead Squat", Modality: ModalityWeightlifting, Category: "squat", Aliases: []string{"ohs"}, CompetitionCount: 9},
		{Key: "thruster", DisplayName: "Thruster", Modality: ModalityWeightlifting, Category: "squat", CompetitionCount: 18},
		{Key: "wall_ball", DisplayName: "Wall Ball", Modality: ModalityWeightlifting, Category: "squat", Aliases: []string{"wall-ball", "wallball", "wall ball shot"}, CompetitionCount: 13},
		{Key: "lunge", DisplayName: "Lunge", Modality: ModalityWeightlifting, Category: "squat", Aliases: []string{"walking lunge", "overhead lunge"}, CompetitionCount: 8},
		{Key: "deadlift", DisplayName: "Deadlift", Modality: ModalityWeightlifting, Category: "hinge", CompetitionCount: 12},
		{Key: "sumo_deadlift_high_pull", DisplayName: "Sumo Deadlift High Pull", Modality: ModalityWeightlifting, Category: "hinge", Aliases: []string{"sdhp"}, CompetitionCount: 2},
		{Key: "kettlebell_swing", DisplayName: "Kettlebell Swing", Modality: ModalityWeightlifting, Category: "hinge", Aliases: []string{"kb swing", "kbs", "russian swing", "american swing"}, CompetitionCount: 7},
		{Key: "good_morning", DisplayName: "Good Morning", Modality: ModalityWeightlifting, Category: "hinge", CompetitionCount: 0},
		{Key: "clean", DisplayName: "Clean", Modality: ModalityWeightlifting, Category: "olympic", Aliases: []string{"squat clean", "hang clean"}, CompetitionCount: 14},
		{Key: "power_clean", DisplayName: "Power Clean", Modality: ModalityWeightlifting, Category: "olympic", CompetitionCount: 10},
		{Key: "clean_and_jerk", DisplayName: "Clean and Jerk", Modality: ModalityWeightlifting, Category: "olympic", Aliases: []string{"clean & jerk", "c&j"}, CompetitionCount: 15},
		{Key: "snatch", DisplayName: "Snatch", Modality: ModalityWeightlifting, Category: "olympic", Aliases: []string{"squat snatch", "hang snatch"}, CompetitionCount: 19},
		{Key: "power_snatch", DisplayName: "Power Snatch", Modality: ModalityWeightlifting, Category: "olympic", CompetitionCount: 9},
		{Key: "shoulder_press", DisplayName: "Shoulder Press", Modality: ModalityWeightlifting, Category: "press", Aliases: []string{"strict press"}, CompetitionCount: 3},
		{Key: "push_press", DisplayName: "Push Press", Modality: ModalityWeightlifting, Category: "press", CompetitionCount: 6},
		{Key: "push_jerk", DisplayName: "Push Jerk", Modality: ModalityWeightlifting, Category: "press", Aliases: []string{"split jerk"}, CompetitionCount: 7},
		{Key: "bench_press", DisplayName: "Bench Press", Modality: ModalityWeightlifting, Category: "press", CompetitionCount: 2},
		{Key: "dumbbell_snatch", DisplayName: "Dumbbell Snatch", Modality: ModalityWeightlifting, Category: "olympic", Aliases: []string{"db snatch"}, CompetitionCount: 8},
		{Key: "farmers_carry", DisplayName: "Farmers Carry", Modality: ModalityWeightlifting, Category: "carry", Aliases: []string{"farmer carry", "farmers walk"}, CompetitionCount: 4},

		// gymnastics
		{Key: "pull_up", DisplayName: "Pull-Up", Modality: ModalityGymnastics, Category: "pull", Aliases: []string{"pull-up", "pullup", "kipping pull-up", "strict pull-up"}, CompetitionCount: 17},
		{Key: "chest_to_bar", DisplayName: "Chest-to-Bar Pull-Up", Modality: ModalityGymnastics, Category: "pull", Aliases: []string{"c2b", "chest-to-bar"}, CompetitionCount: 12},
		{Key: "muscle_up", DisplayName: "Ring Muscle-Up", Modality: ModalityGymnastics, Category: "pull", Aliases: []string{"muscle-up", "ring muscle up", "ring muscle-up"}, CompetitionCount: 16},
		{Key: "bar_muscle_up", DisplayName: "Bar Muscle-Up", Modality: ModalityGymnastics, Category: "pull", Aliases: []string{"bmu", "bar muscle-up"}, CompetitionCount: 9},
		{Key: "rope_climb", DisplayName: "Rope Climb", Modality: ModalityGymnastics, Category: "pull", Aliases: []string{"legless rope climb"}, CompetitionCount: 8},
		{Key: "toes_to_bar", DisplayName: "Toes-to-Bar", Modality: ModalityGymnastics, Category: "core", Aliases: []string{"t2b", "ttb", "toes-to-bar"}, CompetitionCount: 14},
		{Key: "knees_to_elbows", DisplayName: "Knees-to-Elbows", Modality: ModalityGymnastics, Category: "core", Aliases: []string{"k2e", "knees-to-elbows"}, CompetitionCount: 2},
		{Key: "sit_up", DisplayName: "Sit-Up", Modality: ModalityGymnastics, Category: "core", Aliases: []string{"sit-up", "situp", "abmat sit-up"}, CompetitionCount: 3},
		{Key: "ghd_sit_up", DisplayName: "GHD Sit-Up", Modality: ModalityGymnastics, Category: "core", Aliases: []string{"ghd sit-up", "ghd"}, CompetitionCount: 5},
		{Key: "l_sit", DisplayName: "L-Sit", Modality: ModalityGymnastics, Category: "core", Aliases: []string{"l-sit"}, CompetitionCount: 3},
		{Key: "handstand_push_up", DisplayName: "Handstand Push-Up", Modality: ModalityGymnastics, Category: "push", Aliases: []string{"hspu", "handstand push-up", "strict handstand push-up"}, CompetitionCount: 15},
		{Key: "handstand_walk", DisplayName: "Handstand Walk", Modality: ModalityGymnastics, Category: "push", Aliases: []string{"hs walk", "handstand walking"}, CompetitionCount: 10},
		{Key: "push_up", DisplayName: "Push-Up", Modality: ModalityGymnastics, Category: "push", Aliases: []string{"push-up", "pushup", "hand release push-up"}, CompetitionCount: 4},
		{Key: "ring_dip", DisplayName: "Ring Dip", Modality: ModalityGymnastics, Category: "push", Aliases: []string{"ring dips"}, CompetitionCount: 4},
		{Key: "dip", DisplayName: "Dip", Modality: ModalityGymnastics, Category: "push", Aliases: []string{"bar dip"}, CompetitionCount: 2},
		{Key: "air_squat", DisplayName: "Air Squat", Modality: ModalityGymnastics, Category: "squat", Aliases: []string{"air-squat"}, CompetitionCount: 5},
		{Key: "pistol", DisplayName: "Pistol", Modality: ModalityGymnastics, Category: "squat", Aliases: []string{"single-leg squat", "pistol squat"}, CompetitionCount: 6},
		{Key: "burpee", DisplayName: "Burpee", Modality: ModalityGymnastics, Category: "conditioning", Aliases: []string{"bar-facing burpee", "burpee box jump over"}, CompetitionCount: 18},
		{Key: "box_jump", DisplayName: "Box Jump", Modality: ModalityGymnastics, Category: "jump", Aliases: []string{"box jump over", "box-jump"}, CompetitionCount: 11},
		{Key: "double_under", DisplayName: "Double-Under", Modality: ModalityGymnastics, Category: "jump", Aliases: []string{"du", "dus", "dubs", "double-under"}, CompetitionCount: 16},

		// monostructural
		{Key: "run", DisplayName: "Run", Modality: ModalityMonostructural, Category: "cardio", Aliases: []string{"running"}, CompetitionCount: 15},
		{Key: "row", DisplayName: "Row", Modality: ModalityMonostructural, Category: "cardio", Aliases: []string{"rowing", "cal row"}, CompetitionCount: 17},
		{Key: "assault_bike", DisplayName: "Assault Bike", Modality: ModalityMonostructural, Category: "cardio", Aliases: []string{"air bike", "echo bike", "bike erg"}, CompetitionCount: 8},
		{Key: "ski_erg", DisplayName: "Ski Erg", Modality: ModalityMonostructural, Category: "cardio", Aliases: []string{"ski-erg", "skierg"}, CompetitionCount: 4},
		{Key: "swim", DisplayName: "Swim", Modality: ModalityMonostructural, Category: "cardio", Aliases: []string{"swimming"}, CompetitionCount: 3},
	}
}
