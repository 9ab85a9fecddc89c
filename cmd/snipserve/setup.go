package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/snipserve/internal/editor"
	"github.com/bastiangx/snipserve/internal/utils"
	"github.com/bastiangx/snipserve/pkg/catalog"
	"github.com/bastiangx/snipserve/pkg/completion"
	"github.com/bastiangx/snipserve/pkg/config"
	"github.com/bastiangx/snipserve/pkg/dictionary"
	"github.com/bastiangx/snipserve/pkg/syntax"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	ucli "github.com/urfave/cli/v3"
)

// buildCompleter assembles a completer from the completer config. Relative
// paths are resolved against configPath.
func buildCompleter(cfg config.CompleterConfig, configPath string) (*completion.Completer, error) {
	lang, err := syntax.ByName(cfg.Language)
	if err != nil {
		return nil, err
	}

	var opts []completion.Option
	if cfg.LearnWords {
		tok, err := syntax.NewTokenizer(lang)
		if err != nil {
			return nil, err
		}
		opts = append(opts, completion.WithLearnedWords(tok))
	}
	c := completion.NewCompleter(lang, opts...)

	if cfg.WordList != "" {
		path := config.ResolvePath(configPath, cfg.WordList)
		n, err := dictionary.LoadInto(dictionary.WordFunc(c.PushWord), path)
		if err != nil {
			return nil, errors.Wrap(err, "load word list")
		}
		log.Debugf("Added %d words from %s", n, path)
	}

	if cfg.Catalog != "" {
		path := config.ResolvePath(configPath, cfg.Catalog)
		cat, err := catalog.LoadInto(c.Registry(), path)
		if err != nil {
			return nil, errors.Wrap(err, "load catalog")
		}
		log.Debugf("Registered %d types and %d globals from %s", len(cat.Types), len(cat.Globals), path)
	}
	return c, nil
}

// completeCommand prints the candidates for a single marked document, for
// scripting and quick checks of a catalog.
func completeCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "complete",
		Usage:     "Print the completions for TEXT, '|' marks the cursor",
		ArgsUsage: "TEXT",
		Flags: []ucli.Flag{
			&ucli.IntFlag{Name: "pick", Usage: "confirm candidate N and print the edited text"},
		},
		Action: func(_ context.Context, cmd *ucli.Command) error {
			root := cmd.Root()
			cfg, configPath, err := config.LoadConfigWithPriority(root.String("config"))
			if err != nil {
				return err
			}
			applyFlags(root, cfg)
			c, err := buildCompleter(cfg.Completer, configPath)
			if err != nil {
				return err
			}
			if cmd.Args().Len() != 1 {
				return errors.WithHint(errors.New("expected exactly one TEXT argument"), `try: snipserve complete "self.mo|"`)
			}
			return complete(os.Stdout, c, cmd.Args().First(), int(cmd.Int("pick")))
		},
	}
}

func complete(w io.Writer, c *completion.Completer, marked string, pick int) error {
	buf := editor.Parse(marked)
	c.DocumentChanged(buf.Text())
	c.Update(buf.Text(), buf.Selection())

	cands := c.Candidates()
	if pick == 0 {
		for _, cand := range cands {
			fmt.Fprintf(w, "%s\t%s\n", cand.Display, cand.Item.Category)
		}
		return nil
	}

	if pick < 1 || pick > len(cands) {
		return errors.Newf("no candidate %d, there are %d", pick, len(cands))
	}
	for c.Selected() != pick-1 {
		c.Next()
	}
	edit, _ := c.Confirm()
	edit.Apply(buf)
	fmt.Fprintln(w, buf.String())
	return nil
}

// wordsCommand loads a word list file or directory and reports its size,
// or compiles it into a binary list with --compile.
func wordsCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "words",
		Usage:     "Check a word list, or compile it to the binary format",
		ArgsUsage: "PATH",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "compile", Usage: "write the words to this .bin file"},
		},
		Action: func(_ context.Context, cmd *ucli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.WithHint(errors.New("expected exactly one PATH argument"), "try: snipserve words api/ --compile api.bin")
			}
			return compileWords(os.Stdout, cmd.Args().First(), cmd.String("compile"))
		},
	}
}

func compileWords(w io.Writer, src, dst string) error {
	var words []string
	seen := make(map[string]bool)
	n, err := dictionary.LoadInto(dictionary.WordFunc(func(word string) {
		if !seen[word] {
			seen[word] = true
			words = append(words, word)
		}
	}), src)
	if err != nil {
		return errors.Wrap(err, "load word list")
	}
	if dst == "" {
		fmt.Fprintf(w, "%d words (%d unique) in %s\n", n, len(words), src)
		return nil
	}
	if utils.Ext(dst) != "bin" {
		return errors.WithHint(errors.Newf("output %s is not a .bin file", dst), "binary lists use the .bin extension")
	}
	f, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "create %s", dst)
	}
	defer f.Close()
	if err := dictionary.WriteBinary(f, words); err != nil {
		return errors.Wrapf(err, "write %s", dst)
	}
	fmt.Fprintf(w, "wrote %d words to %s\n", len(words), dst)
	return nil
}
