// Package bot runs the Telegram front end over the patient service.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Pash-Data/Nutricare/internal/domain/patient"
	"github.com/Pash-Data/Nutricare/internal/service"
)

const (
	welcomeMessage = "Welcome to NutriCare Bot! Use /add to add a patient or /list to view patients."
	apologyMessage = "Sorry, something went wrong. Please try again later."
)

// Reply is one message the dialog wants sent back to the chat. A non-nil
// Document makes it a file upload instead of plain text.
type Reply struct {
	Text     string
	Document []byte
	Filename string
}

func textReply(text string) []Reply {
	return []Reply{{Text: text}}
}

type state int

// A chat with no session entry is idle; stateIdle only appears as the zero
// value of an uninitialized conversation.
const (
	stateIdle state = iota
	stateAwaitingName
	stateAwaitingAge
	stateAwaitingWeight
	stateAwaitingHeight
	stateAwaitingMUAC
)

type conversation struct {
	state state
	cmd   patient.CreatePatientCommand
}

// Dialog drives the per-chat registration conversation and answers the
// read-only commands. Safe for concurrent use across chats.
type Dialog struct {
	svc *service.PatientService
	log *zap.Logger

	mu       sync.Mutex
	sessions map[int64]*conversation
}

func NewDialog(svc *service.PatientService, log *zap.Logger) *Dialog {
	return &Dialog{
		svc:      svc,
		log:      log,
		sessions: make(map[int64]*conversation),
	}
}

// HandleCommand answers a slash command. Unknown commands return no reply.
func (d *Dialog) HandleCommand(ctx context.Context, chatID int64, command string) []Reply {
	switch command {
	case "start":
		return textReply(welcomeMessage)

	case "add":
		d.mu.Lock()
		defer d.mu.Unlock()
		if _, active := d.sessions[chatID]; active {
			// Only /cancel interrupts a running registration.
			return nil
		}
		d.sessions[chatID] = &conversation{state: stateAwaitingName}
		return textReply("Enter patient name:")

	case "cancel":
		d.mu.Lock()
		_, active := d.sessions[chatID]
		delete(d.sessions, chatID)
		d.mu.Unlock()
		if !active {
			return nil
		}
		return textReply("Operation cancelled.")

	case "list":
		return d.list(ctx)

	case "summary":
		return d.summary(ctx)

	case "export":
		return d.export(ctx)
	}
	return nil
}

// HandleText advances an active registration conversation. Text from an
// idle chat is ignored.
func (d *Dialog) HandleText(ctx context.Context, chatID int64, text string) []Reply {
	replies, cmd := d.advance(chatID, text)
	if cmd != nil {
		return d.complete(ctx, cmd)
	}
	return replies
}

// advance applies one input to the chat's conversation under the lock. On
// the final input it tears down the session and hands back the completed
// command for an unlocked service call.
func (d *Dialog) advance(chatID int64, text string) ([]Reply, *patient.CreatePatientCommand) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, ok := d.sessions[chatID]
	if !ok || sess.state == stateIdle {
		return nil, nil
	}

	switch sess.state {
	case stateAwaitingName:
		sess.cmd.Name = text
		sess.state = stateAwaitingAge
		return textReply("Enter age:"), nil

	case stateAwaitingAge:
		age, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return textReply("Invalid age. Enter a number:"), nil
		}
		sess.cmd.Age = age
		sess.state = stateAwaitingWeight
		return textReply("Enter weight in kg:"), nil

	case stateAwaitingWeight:
		weight, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return textReply("Invalid weight. Enter a number:"), nil
		}
		sess.cmd.WeightKg = weight
		sess.state = stateAwaitingHeight
		return textReply("Enter height in cm:"), nil

	case stateAwaitingHeight:
		height, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return textReply("Invalid height. Enter a number:"), nil
		}
		sess.cmd.HeightCm = height
		sess.state = stateAwaitingMUAC
		return textReply("Enter MUAC in mm:"), nil

	case stateAwaitingMUAC:
		muac, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return textReply("Invalid MUAC. Enter a number:"), nil
		}
		cmd := sess.cmd
		cmd.MuacMM = muac
		delete(d.sessions, chatID)
		return nil, &cmd
	}
	return nil, nil
}

// complete registers the collected measurements. Rejections and storage
// failures both end the conversation with an apology.
func (d *Dialog) complete(ctx context.Context, cmd *patient.CreatePatientCommand) []Reply {
	p, err := d.svc.Register(ctx, cmd)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return textReply("Sorry, that record was rejected: " + strings.Join(verr.Fields, "; ") + ". Use /add to start over.")
		}
		d.log.Error("bot registration failed", zap.Error(err))
		return textReply("Sorry, something went wrong while saving. Please try /add again.")
	}

	feedback := fmt.Sprintf(
		"Patient: %s, Age: %d\nBMI: %.2f (%s)\nNutrition: %s\nRecommendation: %s",
		p.Name, p.Age, p.BMI, p.Build, p.NutritionStatus, p.Recommendation,
	)
	return []Reply{{Text: feedback}, {Text: "Patient added to database!"}}
}

func (d *Dialog) list(ctx context.Context) []Reply {
	patients, err := d.svc.List(ctx)
	if err != nil {
		d.log.Error("bot list failed", zap.Error(err))
		return textReply(apologyMessage)
	}
	if len(patients) == 0 {
		return textReply("No patients in database.")
	}

	var b strings.Builder
	b.WriteString("Patients:\n")
	for _, p := range patients {
		fmt.Fprintf(&b, "%s: BMI %.2f (%s), Nutrition: %s, Rec: %s...\n",
			p.Name, p.BMI, p.Build, p.NutritionStatus, truncate(p.Recommendation, 50))
	}
	return textReply(b.String())
}

func (d *Dialog) summary(ctx context.Context) []Reply {
	sum, err := d.svc.Summarize(ctx)
	if err != nil {
		d.log.Error("bot summary failed", zap.Error(err))
		return textReply(apologyMessage)
	}
	return textReply(fmt.Sprintf(
		"Patients: %d\nSAM: %d\nMAM: %d\nNormal: %d",
		sum.Total, sum.SAM, sum.MAM, sum.Normal,
	))
}

func (d *Dialog) export(ctx context.Context) []Reply {
	data, err := d.svc.ExportCSV(ctx)
	if err != nil {
		d.log.Error("bot export failed", zap.Error(err))
		return textReply(apologyMessage)
	}
	return []Reply{{Document: data, Filename: "patients.csv"}}
}

// truncate shortens s to at most n bytes. Recommendation texts are ASCII,
// so a byte cut is a character cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
