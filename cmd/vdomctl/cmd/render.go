package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/dom"
	"github.com/go-drift/vdom/pkg/loader"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a description document to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.renderFile(args[0]); err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if renderOut != "" {
			f, err := os.Create(renderOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", renderOut, err)
			}
			defer f.Close()
			w = f
		}
		return s.writeHTML(w)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write HTML to this file instead of stdout")
	RootCmd.AddCommand(renderCmd)
}

// session renders successive documents into one container.
type session struct {
	doc      *dom.MemDocument
	root     dom.Element
	renderer *core.Renderer
	registry *loader.Registry
	node     dom.Node
	log      *zap.Logger
}

func newSession() (*session, error) {
	if settings.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	doc := dom.NewMemDocument()
	return &session{
		doc:      doc,
		root:     doc.CreateElement("body"),
		renderer: core.NewRenderer(doc, settings.cfg.Renderer.Options(settings.log)),
		registry: loader.NewRegistry(),
		log:      settings.log,
	}, nil
}

// renderFile reconciles the session's output with the document at path.
func (s *session) renderFile(path string) error {
	d, err := loader.Load(path)
	if err != nil {
		return err
	}
	desc, err := d.Build(s.registry)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	node, err := s.renderer.Render(desc, s.root, s.node)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.node = node
	if err := s.renderer.Flush(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.log.Debug("rendered", zap.String("file", path), zap.Int("instances", s.renderer.Instances()))
	return nil
}

func (s *session) writeHTML(w io.Writer) error {
	for _, child := range s.root.ChildNodes() {
		if err := dom.Render(w, child); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
