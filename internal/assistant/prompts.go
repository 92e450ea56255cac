package assistant

const summaryPrompt = `Based on the following list of tasks, provide a brief, encouraging summary for the day in %s. Mention the number of tasks and highlight 1-2 most important ones (based on priority and due date). The output should be a single paragraph. Tasks:
%s`

const mealPrompt = `Analyze the following diet plan and extract the meal times. Convert the times to HH:MM format. Ignore snacks, just focus on main meals like breakfast, lunch, and dinner. Diet plan: "%s"`

const formattingInstructions = `
The response MUST be in %s.
Format the output for a terminal:
- Use relevant emojis at the start of major sections or headlines.
- Use numbered lists (1., 2., 3.) where appropriate.
- Use double asterisks (**like this**) to bold key terms, numbers, names, and prices.
- Use separator lines (---) between different topics if necessary.
`

const (
	techPrompt     = "Search for the absolute latest 3 major technology news headlines right now. Provide a clear, engaging summary for each."
	economicPrompt = "Provide a comprehensive, real-time economic brief. You MUST search and include: 1) The latest important economic news globally and locally (focus on Egypt if relevant data exists). 2) Current real-time Gold prices in Egypt (EGP). 3) Current real-time USD to EGP exchange rate. 4) A list of the current top 10 richest people in the world right now. 5) Major market updates or top companies by market cap if significant today."
	monthlyPrompt  = `Search for new, interesting, and up-to-date information about the topic: "%s". Write a daily engaging installment (about half a page). Ensure the information is fresh and not generic.`
	dailyPrompt    = "Find 10 new, interesting, and distinct general knowledge facts. Search to ensure they are accurate and perhaps less commonly known. Present them clearly."
)

type messageID int

const (
	msgNoTasks messageID = iota
	msgSummaryFailed
	msgFetchFailed
)

var messages = map[messageID]map[string]string{
	msgNoTasks: {
		"en": "No tasks for today. Great job staying on top of things!",
		"ar": "لا توجد مهام لليوم. أحسنت في تنظيم أمورك!",
	},
	msgSummaryFailed: {
		"en": "Could not generate summary at this time.",
		"ar": "تعذر إنشاء الملخص في الوقت الحالي.",
	},
	msgFetchFailed: {
		"en": "Failed to fetch up-to-date information.",
		"ar": "تعذر جلب المعلومات المحدثة.",
	},
}

func message(lang string, id messageID) string {
	if m, ok := messages[id][lang]; ok {
		return m
	}
	return messages[id]["en"]
}

func languageName(lang string) string {
	if lang == "ar" {
		return "Arabic"
	}
	return "English"
}
