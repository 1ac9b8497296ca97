package commands

import (
	"fmt"

	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// ParamsCommand prints the launch parameters document
func ParamsCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "Print the launch parameters document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the document to this path instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			doc := params.Default()

			if path := c.String("output"); path != "" {
				if err := doc.Write(path); err != nil {
					return err
				}
				logger.Info().Str("path", path).Msg("Wrote params file")
				return nil
			}

			if err := doc.Validate(); err != nil {
				return err
			}
			data, err := doc.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.App.Writer, string(data))
			return err
		},
	}
}
