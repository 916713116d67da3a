package chat

// InputKind declares how a step's answer arrives.
type InputKind string

const (
	InputText       InputKind = "text"
	InputNumber     InputKind = "number"
	InputOptions    InputKind = "options"
	InputSlider     InputKind = "slider"
	InputCompletion InputKind = "completion"
)

// Step is one acquisition step of the onboarding flow. Question is the
// static prompt; Fallback replaces an AI-generated prompt when the
// generation call fails. Slider bounds are advisory UI hints.
type Step struct {
	Field     string
	Question  string
	Fallback  string
	Kind      InputKind
	Options   []string
	Min       float64
	Max       float64
	Increment float64
	Suffix    string
}

// Greeting opens every onboarding conversation.
const Greeting = "Hello! I'm Pulso AI. I'm here to understand your health better. First, what should I call you?"

// Steps returns the fixed onboarding flow. The order is part of the
// persistence contract: answers are written field by field as the
// sequencer advances.
func Steps() []Step {
	return []Step{
		{Field: "intro", Kind: InputText, Question: Greeting},
		{
			Field:    "age",
			Kind:     InputNumber,
			Question: "To give you accurate insights, how old are you?",
			Fallback: "Nice to meet you. To customize your plan, how old are you?",
		},
		{
			Field:    "gender",
			Kind:     InputOptions,
			Options:  []string{"Male", "Female"},
			Question: "Thanks. For accurate health metrics, are you biologically Male or Female?",
			Fallback: "Thanks. For biological accuracy, which gender do you identify with?",
		},
		{
			Field: "heightCm", Kind: InputSlider, Min: 140, Max: 220, Increment: 1, Suffix: " cm",
			Question: "To calculate accurate metrics like BMI, how tall are you (in cm)?",
			Fallback: "To calculate accurate metrics like BMI, how tall are you (in cm)?",
		},
		{
			Field: "weightKg", Kind: InputSlider, Min: 40, Max: 150, Increment: 1, Suffix: " kg",
			Question: "And for your body composition analysis, what is your weight (in kg)?",
			Fallback: "And for your body composition analysis, what is your weight (in kg)?",
		},
		{
			Field: "alcoholDrinks", Kind: InputSlider, Min: 0, Max: 30, Increment: 1, Suffix: " drinks",
			Question: "Lifestyle check: How many alcoholic drinks do you consume per week?",
			Fallback: "Lifestyle check: How many alcoholic drinks do you consume per week?",
		},
		{
			Field: "sleepHours", Kind: InputSlider, Min: 2, Max: 12, Increment: 0.5, Suffix: " hours",
			Question: "Sleep is crucial for recovery. On average, how many hours do you sleep per night?",
			Fallback: "Sleep is the foundation of health. How many hours do you typically get?",
		},
		{
			Field: "screenTimeHours", Kind: InputSlider, Min: 0, Max: 18, Increment: 0.5, Suffix: " hours",
			Question: "In our digital world, screen time matters. Roughly how many hours a day do you spend looking at screens?",
			Fallback: "In our digital world, screen time adds up. How many hours a day are you on devices?",
		},
		{
			Field: "exerciseMinutes", Kind: InputSlider, Min: 0, Max: 180, Increment: 5, Suffix: " min",
			Question: "Movement is medicine. How many minutes of physical activity do you get daily?",
			Fallback: "Movement is key. How many active minutes do you get each day?",
		},
		{
			Field: "stressLevel", Kind: InputSlider, Min: 1, Max: 10, Increment: 1, Suffix: "/10",
			Question: "On a scale of 1 to 10, how high would you say your average stress level is?",
			Fallback: "Mental wellness matters. On a scale of 1-10, how stressed do you feel lately?",
		},
		{
			Field: "completion", Kind: InputCompletion,
			Question: "Thank you! I have analyzed your inputs. You can review your realtime analysis, or complete your profile to finish.",
			Fallback: "I have everything I need! Ready to see your health analysis?",
		},
	}
}
