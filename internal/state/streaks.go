package state

import (
	"time"

	"github.com/hilal-labs/ramadan-companion/internal/model"
)

const dateLayout = "2006-01-02"

// recomputeFullSalah rebuilds the fullSalah streak from the logs after every
// mutation: the length of the run of consecutive dates with all five prayers
// done, ending today, or yesterday while today is still incomplete; a day
// only breaks the streak once it has passed. History is never rewritten, so
// editing today's prayers always lands on the right count.
func recomputeFullSalah(data *model.AppData, today string) {
	end, err := time.Parse(dateLayout, today)
	if err != nil {
		return
	}
	if logEntry, ok := data.DailyLogs[today]; !ok || !logEntry.AllPrayersDone() {
		end = end.AddDate(0, 0, -1)
	}

	count := 0
	last := ""
	for d := end; ; d = d.AddDate(0, 0, -1) {
		key := d.Format(dateLayout)
		logEntry, ok := data.DailyLogs[key]
		if !ok || !logEntry.AllPrayersDone() {
			break
		}
		if last == "" {
			last = key
		}
		count++
	}

	streak := data.Streaks[model.StreakFullSalah]
	streak.Current = count
	if count > streak.Longest {
		streak.Longest = count
	}
	if last != "" {
		streak.LastDate = last
	}
	if data.Streaks == nil {
		data.Streaks = map[string]model.Streak{}
	}
	data.Streaks[model.StreakFullSalah] = streak
}
