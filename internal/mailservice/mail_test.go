package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/blogapi/internal/common"
)

func TestSendEmail(t *testing.T) {
	data := common.UserCreatedEvent{Email: "test@example.com", Username: "tester"}

	t.Run("success", func(t *testing.T) {
		mockParser := new(MockTemplate)
		mockDialer := new(MockDialer)

		mailer := Mail{
			dialer: mockDialer,
			parser: mockParser,
			sender: "sender@example.com",
		}

		subject := bytes.NewBufferString("Test Subject")
		plainBody := bytes.NewBufferString("Test Plain Body")
		htmlBody := bytes.NewBufferString("Test HTML Body")
		mockParser.On("ParseTemplate", welcomeTemplate, data).Return(subject, plainBody, htmlBody, nil)

		mockDialer.On("DialAndSend", mock.MatchedBy(func(msgs []*mail.Message) bool {
			return len(msgs) == 1 &&
				msgs[0].GetHeader("To")[0] == "test@example.com" &&
				msgs[0].GetHeader("From")[0] == "sender@example.com" &&
				msgs[0].GetHeader("Subject")[0] == "Test Subject"
		})).Return(nil)

		err := mailer.send("test@example.com", data, welcomeTemplate)
		assert.NoError(t, err)

		mockParser.AssertExpectations(t)
		mockDialer.AssertExpectations(t)
	})

	t.Run("template error", func(t *testing.T) {
		mockParser := new(MockTemplate)
		mockDialer := new(MockDialer)

		mailer := Mail{dialer: mockDialer, parser: mockParser, sender: "sender@example.com"}

		mockParser.On("ParseTemplate", "missing.tmpl", data).Return(nil, nil, nil, errors.New("no such template"))

		err := mailer.send("test@example.com", data, "missing.tmpl")
		assert.EqualError(t, err, "no such template")
		mockDialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
	})

	t.Run("dial error", func(t *testing.T) {
		mockParser := new(MockTemplate)
		mockDialer := new(MockDialer)

		mailer := Mail{dialer: mockDialer, parser: mockParser, sender: "sender@example.com"}

		mockParser.On("ParseTemplate", welcomeTemplate, data).Return(bytes.NewBufferString("s"), bytes.NewBufferString("p"), bytes.NewBufferString("h"), nil)
		mockDialer.On("DialAndSend", mock.Anything).Return(errors.New("connection refused"))

		err := mailer.send("test@example.com", data, welcomeTemplate)
		assert.ErrorContains(t, err, "connection refused")
		assert.ErrorContains(t, err, "test@example.com")
	})
}
