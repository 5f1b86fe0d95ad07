package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/keymap"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func checkFormat(f string) error {
	if f != formatTable && f != formatYAML {
		return fmt.Errorf("unknown format %q (want table or yaml)", f)
	}
	return nil
}

func newKeymapCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keymap",
		Short: "Inspect keymaps",
		Long: `List, show and validate keymaps.

Keymaps in keyboard.keymap_dir replace the built-in layouts with the same id.`,
	}
	cmd.AddCommand(
		newKeymapListCommand(e),
		newKeymapShowCommand(e),
		newKeymapCheckCommand(),
	)
	return cmd
}

func (e *env) registry() *keymap.Registry {
	return keymap.NewRegistry(e.cfg.Keyboard.KeymapDir, zerolog.Nop())
}

type sourceDoc struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name,omitempty"`
	Origin string `yaml:"origin"`
	Path   string `yaml:"path"`
	Error  string `yaml:"error,omitempty"`
}

func newKeymapListCommand(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available keymaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			reg := e.registry()
			sources, err := reg.Available()
			if err != nil {
				return err
			}

			docs := make([]sourceDoc, 0, len(sources))
			for _, s := range sources {
				d := sourceDoc{ID: s.ID, Origin: string(s.Origin), Path: s.Path}
				if t, err := reg.Get(s.ID); err != nil {
					d.Error = err.Error()
				} else {
					d.Name = t.Name()
				}
				docs = append(docs, d)
			}

			out := cmd.OutOrStdout()
			if format == formatYAML {
				return yaml.NewEncoder(out).Encode(docs)
			}
			rows := make([][]string, 0, len(docs))
			for _, d := range docs {
				name := d.Name
				if d.Error != "" {
					name = errorStyle.Render(d.Error)
				}
				rows = append(rows, []string{d.ID, name, d.Origin, d.Path})
			}
			fmt.Fprintln(out, newTable([]string{"ID", "Name", "Origin", "Path"}, rows, 2, 3))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table or yaml")
	return cmd
}

type cellDoc struct {
	Char string `yaml:"char"`
	Alt  string `yaml:"alt,omitempty"`
}

type directionDoc struct {
	Position int                `yaml:"position"`
	Name     string             `yaml:"name"`
	Buttons  map[string]cellDoc `yaml:"buttons,omitempty"`
}

type tableDoc struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Directions []directionDoc `yaml:"directions"`
}

func newTableDoc(t *keymap.Table) tableDoc {
	doc := tableDoc{ID: t.ID(), Name: t.Name()}
	cells := t.Cells()
	for d := stick.Center; d < stick.Count; d++ {
		dd := directionDoc{Position: int(d), Name: d.String()}
		for i, entry := range cells[d] {
			if entry.Primary == 0 {
				continue
			}
			if dd.Buttons == nil {
				dd.Buttons = make(map[string]cellDoc)
			}
			c := cellDoc{Char: string(entry.Primary)}
			if entry.HasAlt() {
				c.Alt = string(entry.Alt)
			}
			dd.Buttons[keymap.ColumnButton(i).String()] = c
		}
		doc.Directions = append(doc.Directions, dd)
	}
	return doc
}

func showTable(w io.Writer, t *keymap.Table) {
	headers := []string{"#", "Dir"}
	for i := range keymap.Buttons {
		headers = append(headers, strings.ToUpper(keymap.ColumnButton(i).String()))
	}

	cells := t.Cells()
	rows := make([][]string, 0, keymap.Directions)
	for d := stick.Center; d < stick.Count; d++ {
		row := []string{strconv.Itoa(int(d)), d.String()}
		for _, entry := range cells[d] {
			var s string
			switch {
			case entry.Primary == 0:
				s = mutedStyle.Render("·")
			case entry.HasAlt():
				s = string(entry.Primary) + " " + mutedStyle.Render(string(entry.Alt))
			default:
				s = string(entry.Primary)
			}
			row = append(row, s)
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(w, titleStyle.Render(t.Name())+" "+mutedStyle.Render("("+t.ID()+")"))
	fmt.Fprintln(w, newTable(headers, rows, 0, 1))
}

func newKeymapShowCommand(e *env) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <id|file.xml>",
		Short: "Show the characters of a keymap",
		Long: `Show the characters of a keymap by direction and button. The argument is
a keymap id or the path of a keymap file.

Examples:
  padkeys keymap show english
  padkeys keymap show ./custom.xml -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			var t *keymap.Table
			var err error
			if strings.HasSuffix(args[0], ".xml") {
				t, err = keymap.LoadFile(args[0], zerolog.Nop())
			} else {
				t, err = e.registry().Get(args[0])
			}
			if err != nil {
				return err
			}

			if format == formatYAML {
				return yaml.NewEncoder(cmd.OutOrStdout()).Encode(newTableDoc(t))
			}
			showTable(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "output format: table or yaml")
	return cmd
}

func newKeymapCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.xml>...",
		Short: "Validate keymap files",
		Long: `Parse keymap files and report problems. Skipped entries are printed as
warnings; a file that cannot be parsed at all is an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				var warnings int
				log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
					Hook(zerolog.HookFunc(func(_ *zerolog.Event, level zerolog.Level, _ string) {
						if level == zerolog.WarnLevel {
							warnings++
						}
					}))

				t, err := keymap.LoadFile(path, log)
				switch {
				case err != nil:
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("FAIL"), path, err)
				case warnings > 0:
					fmt.Fprintf(out, "%s %s: %q with %d warning(s)\n", warnStyle.Render("WARN"), path, t.Name(), warnings)
				default:
					fmt.Fprintf(out, "%s %s: %q\n", okStyle.Render("OK"), path, t.Name())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d keymap(s) failed to load", failed, len(args))
			}
			return nil
		},
	}
}
