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

package transport

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lukasdietrich/baitmail/internal/models"
)

// Message is an outbound plain text email.
type Message struct {
	From        models.Address
	DisplayName string
	To          models.Address
	Subject     string
	Body        string
}

// compose renders the message in internet message format using the ascii forms of the sender and
// recipient. The body is encoded as quoted-printable utf-8.
func compose(msg *Message, from, to models.Address, date time.Time) ([]byte, error) {
	messageID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	fromHeader := mail.Address{Name: msg.DisplayName, Address: from.String()}
	toHeader := mail.Address{Address: to.String()}

	var buf bytes.Buffer

	writeHeader(&buf, "From", fromHeader.String())
	writeHeader(&buf, "To", toHeader.String())
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", fmt.Sprintf("<%s@%s>", messageID, from.Domain()))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", "text/plain; charset=utf-8")
	writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\n", "\r\n")

	if _, err := qp.Write([]byte(body)); err != nil {
		return nil, err
	}

	if err := qp.Close(); err != nil {
		return nil, err
	}

	buf.WriteString("\r\n")
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}
