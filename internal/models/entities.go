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

// UserEntity is the entity for the "users" table.
type UserEntity struct {
	ID        int64   `db:"id" json:"id"`
	Email     Address `db:"email" json:"email"`
	CreatedAt int64   `db:"created_at" json:"createdAt"`
}

// SampleEmailEntity is the entity for the "sample_emails" table. Sample emails are examples of
// mail a user actually receives and serve as context for generated messages.
type SampleEmailEntity struct {
	ID         int64  `db:"id" json:"id"`
	UserID     int64  `db:"user_id" json:"userId"`
	Subject    string `db:"subject" json:"subject"`
	Body       string `db:"body" json:"body"`
	UploadedAt int64  `db:"uploaded_at" json:"uploadedAt"`
}

// CampaignEntity is the entity for the "campaigns" table.
type CampaignEntity struct {
	ID            int64         `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	TemplateText  string        `db:"template_text" json:"templateText"`
	TrainingLinks TrainingLinks `db:"training_links" json:"trainingLinks"`
	CreatedAt     int64         `db:"created_at" json:"createdAt"`
}

// CampaignResultEntity is the entity for the "campaign_results" table. There is one row per
// recipient and dispatch attempt.
type CampaignResultEntity struct {
	ID                int64  `db:"id" json:"id"`
	CampaignID        int64  `db:"campaign_id" json:"campaignId"`
	UserID            int64  `db:"user_id" json:"userId"`
	TrackingToken     string `db:"tracking_token" json:"-"`
	SentAt            int64  `db:"sent_at" json:"sentAt"`
	Clicked           bool   `db:"clicked" json:"clicked"`
	CompletedTraining bool   `db:"completed_training" json:"completedTraining"`
}
