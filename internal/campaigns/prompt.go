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
	"fmt"
	"strings"

	"github.com/lukasdietrich/baitmail/internal/models"
)

const (
	sampleLimit       = 2
	sampleBodyPreview = 200
)

// buildPrompt assembles the instructions for a single recipient: the campaign template, the
// recipient address, up to two sample emails as style context and the tracking link.
func buildPrompt(
	campaign *models.CampaignEntity,
	recipient models.Address,
	samples []models.SampleEmailEntity,
	trackingLink string,
) string {
	var b strings.Builder

	b.WriteString("Create a personalized phishing simulation email based on this template:\n\n")
	b.WriteString(campaign.TemplateText)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Target email: %s\n", recipient)

	if len(samples) > 0 {
		b.WriteString("\nHere are examples of emails this user typically receives:\n")

		for i, sample := range samples {
			fmt.Fprintf(&b, "\nExample %d:\nSubject: %s\n%s\n", i+1, sample.Subject, preview(sample.Body))
		}
	}

	b.WriteString("\nRequirements:\n")
	b.WriteString("1. Replace every placeholder in curly braces like {name} or {company} with realistic values.\n")
	fmt.Fprintf(&b, "2. Derive a plausible first name from the local part of %s.\n", recipient)
	b.WriteString("3. Use realistic but fictitious company and service names.\n")
	fmt.Fprintf(&b, "4. Include this exact link in the body: %s\n", trackingLink)
	b.WriteString("5. Make the link look like a natural call to action.\n")
	b.WriteString("6. Write two to three short paragraphs.\n")
	b.WriteString("7. Create a sense of urgency without being obviously suspicious.\n")

	b.WriteString("\nAnswer in exactly this format:\n")
	b.WriteString("DISPLAY_NAME: <sender display name>\n")
	b.WriteString("SUBJECT: <subject line>\n")
	b.WriteString("BODY:\n<email body>\n")

	return b.String()
}

// preview returns at most the first 200 runes of body.
func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= sampleBodyPreview {
		return body
	}

	return string(runes[:sampleBodyPreview])
}

// ensureTrackingLink appends a call to action containing link, if body does not contain it
// verbatim.
func ensureTrackingLink(body, link string) string {
	if strings.Contains(body, link) {
		return body
	}

	return body + "\n\nClick here to verify: " + link
}
