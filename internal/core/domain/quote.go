package domain

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
	Emoji  string `json:"emoji"`
}

var quotes = []Quote{
	{Text: "You are in competition with one person and one person only, yourself. Be better than you were yesterday.", Author: "Unknown", Emoji: "🔥"},
	{Text: "The cave you fear to enter holds the treasure you seek.", Author: "Joseph Campbell", Emoji: "💎"},
	{Text: "Discipline is choosing between what you want now and what you want most.", Author: "Abraham Lincoln", Emoji: "⚡"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill", Emoji: "🚀"},
	{Text: "The person you become is more important than the goals you achieve.", Author: "James Clear", Emoji: "🌟"},
	{Text: "You don't have to be great to get started, but you have to get started to be great.", Author: "Les Brown", Emoji: "💪"},
}

// QuoteForDay picks a stable quote for the given day.
func QuoteForDay(day DayKey) Quote {
	label := day.Time(nil).Format("Mon Jan 02 2006")

	var h int32
	for _, r := range label {
		h = (h << 5) - h + int32(r)
	}

	idx := int64(h)
	if idx < 0 {
		idx = -idx
	}
	return quotes[idx%int64(len(quotes))]
}
