package commands

import (
	"strings"

	"github.com/dgallion1/vidbrief/internal/render"
	"github.com/urfave/cli/v2"
)

// NewApp builds the vidbrief command-line application.
func NewApp() *cli.App {
	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   FormatTerminal,
			Usage:   "Output format: " + strings.Join(Formats, ", "),
		},
		&cli.IntFlag{
			Name:  "width",
			Value: render.DefaultWidth,
			Usage: "Wrap width for terminal output",
		},
	}
	backendFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "backend",
			EnvVars: []string{"BACKEND_URL"},
			Usage:   "Summarization backend base URL",
		},
		&cli.StringFlag{
			Name:    "oembed",
			EnvVars: []string{"OEMBED_URL"},
			Usage:   "oEmbed endpoint used for video metadata",
		},
	}
	with := func(extra ...cli.Flag) []cli.Flag {
		flags := append([]cli.Flag{}, outputFlags...)
		flags = append(flags, backendFlags...)
		return append(flags, extra...)
	}

	return &cli.App{
		Name:  "vidbrief",
		Usage: "Summarize, question and analyze YouTube videos",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "structure",
				Usage:     "Structure generated text from a file or stdin",
				ArgsUsage: "[file]",
				Flags:     outputFlags,
				Action:    StructureAction,
			},
			{
				Name:      "metadata",
				Usage:     "Show title, author and thumbnail of a video",
				ArgsUsage: "<url|id>",
				Flags:     with(),
				Action:    MetadataAction,
			},
			{
				Name:      "summary",
				Usage:     "Summarize a video",
				ArgsUsage: "<url|id>",
				Flags: with(&cli.StringFlag{
					Name:  "type",
					Value: "short",
					Usage: "Summary type: short or detailed",
				}),
				Action: SummaryAction,
			},
			{
				Name:      "ask",
				Usage:     "Ask questions about a video; reads one question per line from stdin when none is given",
				ArgsUsage: "<url|id> [question...]",
				Flags: with(&cli.IntFlag{
					Name:  "max-history",
					Value: 10,
					Usage: "Exchanges of chat history sent with each question",
				}),
				Action: AskAction,
			},
			{
				Name:      "insights",
				Usage:     "Suggested questions and topics for a video",
				ArgsUsage: "<url|id>",
				Flags:     with(),
				Action:    InsightsAction,
			},
			{
				Name:      "entities",
				Usage:     "Entity analysis report for a video",
				ArgsUsage: "<url|id>",
				Flags:     with(),
				Action:    EntitiesAction,
			},
		},
	}
}
