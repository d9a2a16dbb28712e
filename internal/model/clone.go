package model

// Clone returns a deep copy of the document. The provider hands copies to
// readers so a snapshot can never alias the live maps.
func (d AppData) Clone() AppData {
	out := d
	out.DailyLogs = make(map[string]DailyLog, len(d.DailyLogs))
	for k, v := range d.DailyLogs {
		out.DailyLogs[k] = v.Clone()
	}
	out.DuaList = append([]Dua(nil), d.DuaList...)
	out.CustomDhikr = append([]Dhikr(nil), d.CustomDhikr...)
	out.Streaks = make(map[string]Streak, len(d.Streaks))
	for k, v := range d.Streaks {
		out.Streaks[k] = v
	}
	return out
}

func (l DailyLog) Clone() DailyLog {
	out := l
	out.Prayers = cloneBoolMap(l.Prayers)
	out.Discipline = cloneBoolMap(l.Discipline)
	out.DhikrCounts = make(map[string]int, len(l.DhikrCounts))
	for k, v := range l.DhikrCounts {
		out.DhikrCounts[k] = v
	}
	if l.QuranLastLocation != nil {
		loc := *l.QuranLastLocation
		out.QuranLastLocation = &loc
	}
	return out
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
