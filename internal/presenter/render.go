package presenter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Lucov/healthcard/internal/snapshot"
)

// Model is the declarative render output. A nil card means the group was
// absent from the snapshot; the display surface paints only what is here.
type Model struct {
	Sleep     *Card
	Energy    *Card
	HeartRate *Card
	Activity  *Card
	Stress    *Card
	Weekly    *WeeklyBlock
}

type Card struct {
	Icon    string
	Title   string
	Primary string
	Quality *Label
	Details []string
}

type WeeklyBlock struct {
	Rows []WeeklyRow
}

type WeeklyRow struct {
	Title string
	Value string
}

// Render turns a snapshot into a Model. It is a pure function of its
// input: callers are expected to have run CheckFreshness and Validate
// first, but every optional field is still guarded here since a valid
// snapshot may be missing any individual group or value.
func Render(snap *snapshot.Snapshot) *Model {
	model := &Model{}
	if snap == nil {
		return model
	}

	if daily := snap.DailyStats; daily != nil {
		model.Sleep = renderSleep(daily.Sleep)
		model.Energy = renderEnergy(daily.Energy)
		model.HeartRate = renderHeartRate(daily.HeartRate)
		model.Activity = renderActivity(daily.Activity)
		model.Stress = renderStress(daily.Stress)
	}

	model.Weekly = renderWeekly(snap.WeeklyTrends)

	return model
}

func renderSleep(sleep *snapshot.Sleep) *Card {
	if sleep == nil {
		return nil
	}

	card := &Card{Icon: "😴", Title: "Sleep", Primary: "--"}

	if sleep.Score != nil {
		card.Primary = formatScore(*sleep.Score)
		label := DeriveLabel(KindSleepScore, *sleep.Score)
		card.Quality = &label
	}
	if sleep.Duration != nil {
		card.Details = append(card.Details, FormatHours(*sleep.Duration)+" asleep")
	}
	if sleep.DeepSleep != nil {
		card.Details = append(card.Details, "Deep "+FormatHours(*sleep.DeepSleep))
	}
	if sleep.RemSleep != nil {
		card.Details = append(card.Details, "REM "+FormatHours(*sleep.RemSleep))
	}
	if sleep.LightSleep != nil {
		card.Details = append(card.Details, "Light "+FormatHours(*sleep.LightSleep))
	}
	if sleep.BedTime != nil && sleep.WakeTime != nil {
		card.Details = append(card.Details, *sleep.BedTime+" - "+*sleep.WakeTime)
	}

	return card
}

func renderEnergy(energy *snapshot.Energy) *Card {
	if energy == nil {
		return nil
	}

	card := &Card{Icon: "⚡", Title: "Energy", Primary: "--"}

	if energy.Score != nil {
		card.Primary = formatScore(*energy.Score)
		label := DeriveLabel(KindEnergyScore, *energy.Score)
		card.Quality = &label
	}

	return card
}

func renderHeartRate(hr *snapshot.HeartRate) *Card {
	if hr == nil {
		return nil
	}

	card := &Card{Icon: "❤️", Title: "Heart Rate", Primary: "--"}

	if hr.Resting != nil {
		card.Primary = formatScore(*hr.Resting) + " bpm"
		label := DeriveLabel(KindRestingHR, *hr.Resting)
		card.Quality = &label
	}
	if hr.Average != nil {
		card.Details = append(card.Details, "Avg "+formatScore(*hr.Average)+" bpm")
	}
	if hr.Min != nil && hr.Max != nil {
		card.Details = append(card.Details, fmt.Sprintf("Range %s-%s bpm", formatScore(*hr.Min), formatScore(*hr.Max)))
	}

	return card
}

func renderActivity(activity *snapshot.Activity) *Card {
	if activity == nil {
		return nil
	}

	card := &Card{Icon: "🏃", Title: "Activity", Primary: "--"}

	if activity.Steps != nil {
		card.Primary = formatCount(*activity.Steps) + " steps"
	}
	if activity.ActiveMinutes != nil {
		card.Details = append(card.Details, formatScore(*activity.ActiveMinutes)+" active min")
	}
	if activity.Calories != nil {
		card.Details = append(card.Details, formatCount(*activity.Calories)+" kcal")
	}

	return card
}

func renderStress(stress *snapshot.Stress) *Card {
	if stress == nil {
		return nil
	}

	card := &Card{Icon: "🧘", Title: "Stress", Primary: "--"}

	if stress.Average != nil {
		card.Primary = formatScore(*stress.Average)
		label := DeriveLabel(KindStress, *stress.Average)
		card.Quality = &label
	}

	return card
}

func renderWeekly(trends *snapshot.WeeklyTrends) *WeeklyBlock {
	if trends == nil {
		return nil
	}

	block := &WeeklyBlock{}
	add := func(title, value string) {
		block.Rows = append(block.Rows, WeeklyRow{Title: title, Value: value})
	}

	if trends.AverageSleepScore != nil {
		add("Sleep score", formatScore(*trends.AverageSleepScore))
	}
	if trends.AverageEnergyScore != nil {
		add("Energy score", formatScore(*trends.AverageEnergyScore))
	}
	if trends.AverageSleepDuration != nil {
		add("Sleep", FormatHours(*trends.AverageSleepDuration))
	}
	if trends.AverageRestingHR != nil {
		add("Resting HR", formatScore(*trends.AverageRestingHR)+" bpm")
	}
	if trends.AverageSteps != nil {
		add("Steps", formatCount(*trends.AverageSteps))
	}

	return block
}

// FormatHours renders fractional hours as "Xh Ym". Minutes are rounded,
// then carried into the hour when rounding reaches 60 so 1.999 renders as
// "2h 0m" rather than "1h 60m".
func FormatHours(h float64) string {
	hours := int(math.Floor(h))
	minutes := int(math.Round((h - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatCount groups digits in thousands for step and calorie counts.
func formatCount(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}

	if neg {
		return "-" + string(out)
	}
	return string(out)
}
