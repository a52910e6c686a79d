// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package models

import (
	"math"
)

// Counts are the raw totals over the whole store.
type Counts struct {
	TotalUsers     int64 `db:"total_users" json:"totalUsers"`
	TotalCampaigns int64 `db:"total_campaigns" json:"totalCampaigns"`
	TotalSent      int64 `db:"total_sent" json:"totalSent"`
	TotalClicks    int64 `db:"total_clicks" json:"totalClicks"`
	TotalCompleted int64 `db:"total_completed" json:"totalCompleted"`
}

// Stats are Counts with derived percentages.
type Stats struct {
	Counts
	ClickRate      float64 `json:"clickRate"`
	CompletionRate float64 `json:"completionRate"`
}

// NewStats derives the click rate (clicks per sent mail) and the completion rate (completed
// trainings per click) in percent. A rate with a zero denominator is 0.
func NewStats(counts Counts) Stats {
	return Stats{
		Counts:         counts,
		ClickRate:      percentage(counts.TotalClicks, counts.TotalSent, 0),
		CompletionRate: percentage(counts.TotalCompleted, counts.TotalClicks, 0),
	}
}

// Score summarizes how well a single user did.
type Score struct {
	TotalSent         int     `json:"totalSent"`
	TotalClicked      int     `json:"totalClicked"`
	TotalNotClicked   int     `json:"totalNotClicked"`
	TrainingCompleted int     `json:"trainingCompleted"`
	PassRate          float64 `json:"passRate"`
}

// NewScore counts the results of a user. A user who never received a mail passes with 100%.
func NewScore(results []CampaignResultEntity) Score {
	var score Score

	for _, result := range results {
		score.TotalSent++

		if result.Clicked {
			score.TotalClicked++
		}

		if result.CompletedTraining {
			score.TrainingCompleted++
		}
	}

	score.TotalNotClicked = score.TotalSent - score.TotalClicked
	score.PassRate = percentage(int64(score.TotalNotClicked), int64(score.TotalSent), 100)

	return score
}

// percentage returns 100*part/total rounded to two decimals or fallback if total is zero.
func percentage(part, total int64, fallback float64) float64 {
	if total == 0 {
		return fallback
	}

	return math.Round(10000*float64(part)/float64(total)) / 100
}
