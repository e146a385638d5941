// ABOUTME: Fixed exercise libraries keyed by fitness level.
// ABOUTME: Each library has warmup, strength and cardio subsets.
package plan

import "github.com/harperreed/fittrack/internal/models"

// Library is the exercise pool for one fitness level.
type Library struct {
	Warmup   []models.Exercise
	Strength []models.Exercise
	Cardio   []models.Exercise
}

func ex(name, duration, reps, instructions string, muscles ...string) models.Exercise {
	return models.Exercise{
		Name:         name,
		Duration:     duration,
		Reps:         reps,
		Instructions: instructions,
		MuscleGroups: muscles,
	}
}

var libraries = map[models.FitnessLevel]Library{
	models.LevelBeginner: {
		Warmup: []models.Exercise{
			ex("Gentle Walk", "5 min", "", "Walk at comfortable pace", "legs", "cardio"),
			ex("Arm Circles", "2 min", "", "Small circles, both directions", "shoulders"),
			ex("Neck Rolls", "2 min", "", "Slow, controlled rotations", "neck"),
		},
		Strength: []models.Exercise{
			ex("Wall Push-ups", "2 sets", "8-10 reps", "Hands on wall, push away", "chest", "arms"),
			ex("Chair Squats", "2 sets", "10-12 reps", "Squat to touch chair", "legs", "glutes"),
			ex("Standing Knee Lifts", "2 sets", "10 each", "Alternating knee raises", "core", "legs"),
		},
		Cardio: []models.Exercise{
			ex("Marching in Place", "3 min", "", "Lift knees high", "cardio", "legs"),
			ex("Step Touches", "3 min", "", "Side to side steps", "cardio", "legs"),
		},
	},
	models.LevelIntermediate: {
		Warmup: []models.Exercise{
			ex("Brisk Walk/Jog", "5 min", "", "Moderate pace warm-up", "cardio"),
			ex("Dynamic Stretches", "3 min", "", "Leg swings, arm rotations", "full body"),
		},
		Strength: []models.Exercise{
			ex("Regular Push-ups", "3 sets", "10-15 reps", "Full push-ups", "chest", "arms", "core"),
			ex("Bodyweight Squats", "3 sets", "15-20 reps", "Deep squats", "legs", "glutes"),
			ex("Lunges", "3 sets", "10 each leg", "Alternating forward lunges", "legs", "glutes"),
			ex("Plank", "3 sets", "30-45 sec", "Hold plank position", "core"),
		},
		Cardio: []models.Exercise{
			ex("Jumping Jacks", "4 min", "3 sets", "High intensity", "cardio", "full body"),
			ex("High Knees", "3 min", "", "Run in place", "cardio", "legs"),
		},
	},
	models.LevelAdvanced: {
		Warmup: []models.Exercise{
			ex("Light Jog", "5 min", "", "Get heart rate up", "cardio"),
			ex("Dynamic Warm-up", "5 min", "", "Full body activation", "full body"),
		},
		Strength: []models.Exercise{
			ex("Diamond Push-ups", "4 sets", "15-20 reps", "Hands close together", "chest", "triceps"),
			ex("Jump Squats", "4 sets", "15 reps", "Explosive jumps", "legs", "glutes", "power"),
			ex("Bulgarian Split Squats", "3 sets", "12 each", "Rear foot elevated", "legs", "glutes"),
			ex("Burpees", "3 sets", "10-15 reps", "Full body explosive", "full body", "cardio"),
		},
		Cardio: []models.Exercise{
			ex("HIIT Intervals", "5 min", "", "30s sprint, 30s rest", "cardio"),
			ex("Mountain Climbers", "4 min", "4 sets", "High intensity", "cardio", "core"),
		},
	},
}

// LibraryFor returns the library for a level. Unknown levels get the
// beginner library.
func LibraryFor(level models.FitnessLevel) Library {
	if lib, ok := libraries[level]; ok {
		return lib
	}
	return libraries[models.LevelBeginner]
}
