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

package campaigns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasdietrich/baitmail/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	recipient, err := models.Parse("jane.doe@example.com")
	require.NoError(t, err)

	campaign := models.CampaignEntity{TemplateText: "Your {service} account is locked."}
	samples := []models.SampleEmailEntity{
		{Subject: "Quarterly report", Body: "Please find attached"},
		{Subject: "Lunch", Body: strings.Repeat("x", 300)},
	}

	prompt := buildPrompt(&campaign, recipient, samples, "http://track/?clicked=abc")

	assert.Contains(t, prompt, "Your {service} account is locked.")
	assert.Contains(t, prompt, "Target email: jane.doe@example.com")
	assert.Contains(t, prompt, "Example 1:\nSubject: Quarterly report\nPlease find attached\n")
	assert.Contains(t, prompt, "Example 2:\nSubject: Lunch\n"+strings.Repeat("x", 200)+"\n")
	assert.NotContains(t, prompt, strings.Repeat("x", 201))
	assert.Contains(t, prompt, "Include this exact link in the body: http://track/?clicked=abc")
	assert.Contains(t, prompt, "DISPLAY_NAME:")
}

func TestBuildPromptWithoutSamples(t *testing.T) {
	recipient, err := models.Parse("jane@example.com")
	require.NoError(t, err)

	prompt := buildPrompt(&models.CampaignEntity{}, recipient, nil, "link")
	assert.NotContains(t, prompt, "Example 1")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short"))
	assert.Equal(t, strings.Repeat("ä", 200), preview(strings.Repeat("ä", 250)))
}

func TestEnsureTrackingLink(t *testing.T) {
	for _, tc := range []struct {
		body     string
		expected string
	}{
		{
			body:     "Visit http://t/?c=1 now",
			expected: "Visit http://t/?c=1 now",
		},
		{
			body:     "Visit our portal",
			expected: "Visit our portal\n\nClick here to verify: http://t/?c=1",
		},
		{
			body:     "",
			expected: "\n\nClick here to verify: http://t/?c=1",
		},
	} {
		assert.Equal(t, tc.expected, ensureTrackingLink(tc.body, "http://t/?c=1"))
	}
}
