package domain

const (
	LearningDomainAll   = "All"
	LearningDomainOther = "Other"
)

var habitDomains = map[string]string{
	"salesforce": "Salesforce",
	"java":       "Java",
	"webdev":     "Web Dev",
	"dsa":        "DSA",
	"fitness":    "Fitness",
}

func DomainForHabit(habitID string) string {
	if d, ok := habitDomains[habitID]; ok {
		return d
	}
	return LearningDomainOther
}

type LearningEntry struct {
	ID      string `json:"id"`
	Date    DayKey `json:"date"`
	HabitID string `json:"habit_id"`
	Topic   string `json:"topic"`
	Domain  string `json:"domain"`
}

type LearningDay struct {
	Date    DayKey          `json:"date"`
	Entries []LearningEntry `json:"entries"`
}

type LearningLog struct {
	Domain       string         `json:"domain"`
	Total        int            `json:"total"`
	DomainCounts map[string]int `json:"domain_counts"`
	Days         []LearningDay  `json:"days"`
}
