package models

// DefaultMovements is the built-in movement catalog.
func DefaultMovements() []Movement {
	seed := [][2]string{
		{"Back Squat", "Powerlifting"},
		{"Front Squat", "Weightlifting"},
		{"Deadlift", "Powerlifting"},
		{"Bench Press", "Powerlifting"},
		{"Overhead Press", "Barbell"},
		{"Push Press", "Barbell"},
		{"Push Jerk", "Weightlifting"},
		{"Split Jerk", "Weightlifting"},
		{"Clean", "Weightlifting"},
		{"Power Clean", "Weightlifting"},
		{"Snatch", "Weightlifting"},
		{"Power Snatch", "Weightlifting"},
		{"Overhead Squat", "Weightlifting"},
		{"Thruster", "Barbell"},
		{"Strict Pull-Up", "Gymnastics"},
	}
	out := make([]Movement, 0, len(seed))
	for _, s := range seed {
		out = append(out, Movement{Name: s[0], Category: s[1]})
	}
	return out
}

// DefaultWODs is the built-in benchmark workout catalog.
func DefaultWODs() []WOD {
	seed := []struct {
		name, description, loads string
		format                   WODFormat
	}{
		{"Fran", "21-15-9: Thrusters, Pull-Ups", "95/65 lb", FormatForTime},
		{"Grace", "30 Clean & Jerks", "135/95 lb", FormatForTime},
		{"Isabel", "30 Snatches", "135/95 lb", FormatForTime},
		{"Karen", "150 Wall Balls", "20/14 lb", FormatForTime},
		{"Diane", "21-15-9: Deadlifts, HSPU", "225/155 lb", FormatForTime},
		{"Helen", "3 Rounds: 400m, 21 KB, 12 PU", "53/35 lb", FormatForTime},
		{"Jackie", "1000m Row, 50 Thrusters, 30 PU", "45/35 lb", FormatForTime},
		{"Cindy", "20min: 5 PU, 10 Push, 15 Squat", "BW", FormatAMRAP},
		{"DT", "5 Rounds: 12 DL, 9 HPC, 6 PJ", "155/105 lb", FormatForTime},
		{"Murph", "1mi, 100 PU, 200 Push, 300 Sq, 1mi", "20/14 vest", FormatForTime},
	}
	out := make([]WOD, 0, len(seed))
	for _, s := range seed {
		loads := s.loads
		tags := "FORMAT:" + string(s.format)
		out = append(out, WOD{
			Name:            s.name,
			Format:          s.format,
			Description:     s.description,
			PrescribedLoads: &loads,
			Tags:            &tags,
		})
	}
	return out
}
