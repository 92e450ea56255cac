package info

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nahar/internal/assistant"
	"github.com/julianstephens/nahar/internal/cli"
	apperrors "github.com/julianstephens/nahar/internal/errors"
	"github.com/julianstephens/nahar/internal/tasks"
	"github.com/julianstephens/nahar/internal/tui/forms"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

// SummaryCmd prints a generated overview of the open tasks.
type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Tasks()
	if err != nil {
		return err
	}
	all, err := store.List(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	pending, _ := tasks.Partition(all)

	svc, err := ctx.Assistant()
	if err != nil {
		return err
	}
	fmt.Println(headerStyle.Render("Daily summary"))
	fmt.Println(svc.DailySummary(ctx.Context(), tasks.SortByDue(pending)))
	return nil
}

type InfoCmd struct {
	View  string `arg:"" enum:"tech,economic,monthly,daily" help:"Which page to show (tech|economic|monthly|daily)."`
	Fresh bool   `help:"Ignore today's cached copy."`
}

var viewTitles = map[assistant.InfoView]string{
	assistant.ViewTech:     "Tech news",
	assistant.ViewEconomic: "Economic brief",
	assistant.ViewMonthly:  "Topic of the month",
	assistant.ViewDaily:    "Daily facts",
}

func (c *InfoCmd) Run(ctx *cli.Context) error {
	view := assistant.InfoView(c.View)
	svc, err := ctx.Assistant()
	if err != nil {
		return err
	}

	content, err := svc.Info(ctx.Context(), view, c.Fresh)
	if errors.Is(err, assistant.ErrTopicRequired) {
		topic, ferr := askTopic()
		if ferr != nil {
			return err
		}
		if err := svc.SetTopic(ctx.Context(), topic); err != nil {
			return err
		}
		content, err = svc.Info(ctx.Context(), view, c.Fresh)
	}
	if err != nil {
		var fe *assistant.FetchError
		if errors.As(err, &fe) {
			return errors.New(apperrors.UserMessage(err))
		}
		return err
	}

	fmt.Println(headerStyle.Render(viewTitles[view]))
	fmt.Println(content)
	return nil
}

func askTopic() (string, error) {
	var topic string
	if err := forms.NewTopicForm(&topic).Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(topic), nil
}

type TopicCmd struct {
	Set  TopicSetCmd  `cmd:"" help:"Set the monthly topic."`
	Show TopicShowCmd `cmd:"" help:"Show the monthly topic." default:"1"`
}

type TopicSetCmd struct {
	Topic []string `arg:"" optional:"" help:"Topic to follow this month. Omit to fill in a form."`
}

func (c *TopicSetCmd) Run(ctx *cli.Context) error {
	topic := strings.TrimSpace(strings.Join(c.Topic, " "))
	if topic == "" {
		var err error
		if topic, err = askTopic(); err != nil {
			return fmt.Errorf("topic form: %w", err)
		}
	}

	svc, err := ctx.Assistant()
	if err != nil {
		return err
	}
	if err := svc.SetTopic(ctx.Context(), topic); err != nil {
		return err
	}
	fmt.Printf("Monthly topic set to %q\n", topic)
	return nil
}

type TopicShowCmd struct{}

func (c *TopicShowCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Assistant()
	if err != nil {
		return err
	}
	topic, err := svc.Topic(ctx.Context())
	if err != nil {
		return err
	}
	if topic == "" {
		fmt.Println("No monthly topic set. Use 'nahar topic set <topic>'.")
		return nil
	}
	fmt.Println(topic)
	return nil
}
