package internal

import "time"

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session ties a bearer token to a user id. Every request names its
// user through one of these; nothing reads an ambient current user.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthProfile holds the metrics collected during onboarding and
// overwritten by daily updates. Slider bounds are advisory only; the
// store never re-validates them.
type HealthProfile struct {
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Gender          string  `json:"gender"`
	HeightCm        float64 `json:"heightCm"`
	WeightKg        float64 `json:"weightKg"`
	AlcoholDrinks   float64 `json:"alcoholDrinks"`
	SleepHours      float64 `json:"sleepHours"`
	ScreenTimeHours float64 `json:"screenTimeHours"`
	ExerciseMinutes float64 `json:"exerciseMinutes"`
	StressLevel     float64 `json:"stressLevel"`
	WaterLiters     float64 `json:"waterLiters"`
	Nationality     string  `json:"nationality"`
}

// DailyEntry is one day's metrics. At most one entry per date per user;
// writing the same date overwrites.
type DailyEntry struct {
	Date            string  `json:"date"`
	SleepHours      float64 `json:"sleepHours"`
	ExerciseMinutes float64 `json:"exerciseMinutes"`
	ScreenTimeHours float64 `json:"screenTimeHours"`
	StressLevel     float64 `json:"stressLevel"`
	WaterLiters     float64 `json:"waterLiters"`
}

// WeeklyData maps week-start date string -> date string -> entry.
type WeeklyData map[string]map[string]DailyEntry

type Comparison struct {
	Sleep    string `json:"sleep"`
	Activity string `json:"activity"`
	Overall  string `json:"overall"`
}

// HealthAnalysis is the structured result of a full-profile analysis,
// cached in the store and replaced on every recomputation.
type HealthAnalysis struct {
	Score          int        `json:"score"`
	IsMLBased      bool       `json:"isMlBased"`
	LifeExpectancy float64    `json:"lifeExpectancy"`
	BMI            float64    `json:"bmi"`
	Summary        string     `json:"summary"`
	Risks          []string   `json:"risks"`
	Comparison     Comparison `json:"comparison"`
	Insights       []string   `json:"insights"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
}

type Recommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high, medium, low
	Category    string `json:"category"`
}

type Reminder struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`      // "HH:MM"
	Frequency string    `json:"frequency"` // once, daily, hourly
	Interval  int       `json:"interval,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type CustomGoal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      string    `json:"target"`
	Current     string    `json:"current"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DailyGoal is the rotating wellness challenge shown on the dashboard.
type DailyGoal struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Progress    float64 `json:"progress"`
	Target      string  `json:"target"`
	Current     string  `json:"current"`
}

type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// ChatMessage is one turn in an onboarding or assistant conversation.
// Message lists are append-only.
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
