package cli

import "github.com/rcliao/hunter-protocol/internal/model"

type hunterView struct {
	*model.Hunter
	Season        model.Season `json:"season"`
	DaysRemaining uint32       `json:"days_remaining"`
}

func viewHunter(h *model.Hunter) hunterView {
	v := hunterView{Hunter: h, Season: model.SeasonForDay(h.CurrentDay)}
	if h.CurrentDay < model.ProtocolDays {
		v.DaysRemaining = model.ProtocolDays - h.CurrentDay
	}
	return v
}

type questSummary struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

func summarize(st *model.State) questSummary {
	return questSummary{
		Total:     st.Quests.Len(),
		Available: len(st.Quests.Available(st.Hunter)),
		Active:    len(st.Quests.Active()),
		Completed: len(st.Quests.WithStatus(model.StatusCompleted)),
		Failed:    len(st.Quests.WithStatus(model.StatusFailed)),
	}
}
