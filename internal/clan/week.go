package clan

import (
	"fmt"
	"time"
)

// WeekLabel identifies a war week in the counter store.
//
// Live weeks are labelled "Week-YYYYMMDD". Settled weeks imported from the race log are
// labelled "W<section>-YYYYMMDD". The character after the leading 'W' is a digit for
// historical labels and 'e' for live ones, so the two never collide.
type WeekLabel string

const (
	LiveWeekPrefix       = "Week-"
	HistoricalWeekPrefix = "W"

	dateLayout  = "20060102"
	missingDate = "00000000"
)

// LiveWeek labels the week in progress from the race's createdDate. When the API omits
// the date the Monday of now's ISO week is used.
func LiveWeek(createdDate string, now time.Time) WeekLabel {
	if date := datePart(createdDate); date != "" {
		return WeekLabel(LiveWeekPrefix + date)
	}
	return WeekLabel(LiveWeekPrefix + Monday(now).Format(dateLayout))
}

// HistoricalWeek labels a finished race from the race log.
func HistoricalWeek(sectionIndex int, createdDate string) WeekLabel {
	if sectionIndex < 0 {
		sectionIndex = 0
	}
	date := datePart(createdDate)
	if date == "" {
		date = missingDate
	}
	return WeekLabel(fmt.Sprintf("%s%d-%s", HistoricalWeekPrefix, sectionIndex, date))
}

// Monday returns the start of t's ISO week, at midnight in t's location.
func Monday(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsHistorical reports whether the label belongs to an imported, settled week.
func (w WeekLabel) IsHistorical() bool {
	s := string(w)
	return len(s) > 1 && s[0] == HistoricalWeekPrefix[0] && s[1] >= '0' && s[1] <= '9'
}

func (w WeekLabel) String() string {
	return string(w)
}

func datePart(createdDate string) string {
	if len(createdDate) < len(dateLayout) {
		return ""
	}
	return createdDate[:len(dateLayout)]
}
