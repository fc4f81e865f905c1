package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dgallion1/vidbrief/internal/backend"
	"github.com/dgallion1/vidbrief/internal/config"
	"github.com/dgallion1/vidbrief/internal/doctree"
	"github.com/dgallion1/vidbrief/internal/parser"
	"github.com/dgallion1/vidbrief/internal/render"
	"github.com/dgallion1/vidbrief/internal/report"
	"github.com/dgallion1/vidbrief/internal/session"
	"github.com/urfave/cli/v2"
)

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))
}

// loadConfig reads the service configuration and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if c.IsSet("backend") {
		cfg.BackendURL = c.String("backend")
	}
	if c.IsSet("oembed") {
		cfg.OEmbedURL = c.String("oembed")
	}
	return cfg, cfg.Validate()
}

func newClient(c *cli.Context) (*backend.Client, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return backend.NewClient(cfg.BackendURL, cfg.OEmbedURL, backend.Timeouts{
		Metadata: cfg.MetadataTimeout,
		Summary:  cfg.SummaryTimeout,
		Ask:      cfg.AskTimeout,
		Insights: cfg.InsightsTimeout,
		Entities: cfg.EntitiesTimeout,
	}), nil
}

// videoArg returns the video ID named by the first argument.
func videoArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("%w: a YouTube URL or video ID is required", backend.ErrInvalidVideo)
	}
	return backend.ExtractVideoID(c.Args().First())
}

// failure logs err and converts it into a user-facing exit error.
func failure(logger *slog.Logger, action string, err error) error {
	logger.Error(action+" failed", "error", err)
	return cli.Exit(backend.UserMessage(err), 1)
}

// StructureAction structures text from a file or stdin without contacting
// the backend.
func StructureAction(c *cli.Context) error {
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if c.NArg() > 0 && c.Args().First() != "-" {
		f, err := os.Open(c.Args().First())
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return writeDocument(c.App.Writer, parser.StructurePayload(string(raw)), format, c.Int("width"))
}

// MetadataAction prints the title, author and thumbnail of a video.
func MetadataAction(c *cli.Context) error {
	logger := newLogger(c)
	format := c.String("format")
	if format == FormatTerminal || format == FormatHTML || format == FormatMarkdown {
		format = FormatYAML
	}

	id, err := videoArg(c)
	if err != nil {
		return failure(logger, "metadata", err)
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	meta, err := client.Metadata(c.Context, id)
	if err != nil {
		return failure(logger, "metadata", err)
	}
	return writeData(c.App.Writer, meta, format)
}

// SummaryAction fetches and prints a short or detailed summary.
func SummaryAction(c *cli.Context) error {
	logger := newLogger(c)
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}
	kind, err := backend.ParseSummaryType(c.String("type"))
	if err != nil {
		return err
	}

	id, err := videoArg(c)
	if err != nil {
		return failure(logger, "summary", err)
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Info("Requesting summary", "video_id", id, "type", kind)
	text, err := client.Summary(c.Context, id, kind)
	if err != nil {
		return failure(logger, "summary", err)
	}
	return writeDocument(c.App.Writer, parser.StructurePayload(text), format, c.Int("width"))
}

// InsightsAction fetches and prints suggested questions and topics.
func InsightsAction(c *cli.Context) error {
	logger := newLogger(c)
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	id, err := videoArg(c)
	if err != nil {
		return failure(logger, "insights", err)
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	payload, err := client.Insights(c.Context, id)
	if err != nil {
		return failure(logger, "insights", err)
	}
	return writeDocument(c.App.Writer, parser.StructurePayload(payload), format, c.Int("width"))
}

// EntitiesAction fetches the entity report and prints its layout.
func EntitiesAction(c *cli.Context) error {
	logger := newLogger(c)
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	id, err := videoArg(c)
	if err != nil {
		return failure(logger, "entities", err)
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	rep, err := client.Entities(c.Context, id)
	if err != nil {
		return failure(logger, "entities", err)
	}
	return writeLayout(c.App.Writer, report.LayoutReport(rep), format, c.Int("width"))
}

// AskAction answers one question given as an argument, or one question per
// line of stdin. Questions read from stdin share a chat session.
func AskAction(c *cli.Context) error {
	logger := newLogger(c)
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	id, err := videoArg(c)
	if err != nil {
		return failure(logger, "ask", err)
	}
	client, err := newClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	store := session.NewStore(0, c.Int("max-history"))
	sess := store.Resolve("", id)

	questions := c.Args().Tail()
	if len(questions) > 0 {
		if err := askOne(c, client, sess, strings.Join(questions, " "), format); err != nil {
			return failure(logger, "ask", err)
		}
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		if err := askOne(c, client, sess, q, format); err != nil {
			return failure(logger, "ask", err)
		}
	}
	return scanner.Err()
}

// askOne sends a single question with the session history and prints the
// answer followed by its evaluation metrics.
func askOne(c *cli.Context, client *backend.Client, sess *session.Session, question, format string) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	answer, err := client.Ask(ctx, sess.VideoID, question, sess.History())
	if err != nil {
		return err
	}
	sess.Append(backend.Exchange{Question: question, Answer: answer.Text})

	doc := parser.StructurePayload(answer.Text)
	metrics := report.LayoutMetrics(answer.Metrics)
	w := c.App.Writer

	switch format {
	case FormatJSON, FormatYAML:
		return writeData(w, struct {
			Question string            `json:"question" yaml:"question"`
			Document *doctree.Document `json:"document" yaml:"document"`
			Metrics  *report.Section   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
		}{question, doc, metrics}, format)
	}

	if err := writeDocument(w, doc, format, c.Int("width")); err != nil {
		return err
	}
	if metrics == nil {
		return nil
	}
	switch format {
	case FormatTerminal:
		_, err = fmt.Fprintln(w, "\n"+render.TerminalSection(metrics, c.Int("width")))
	case FormatHTML:
		var out string
		if out, err = render.SectionHTML(metrics); err == nil {
			_, err = io.WriteString(w, out)
		}
	}
	return err
}
