package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/vdom/pkg/dom"
)

var patchJSON bool

var patchCmd = &cobra.Command{
	Use:   "patch FROM TO",
	Short: "Show the host mutations that move FROM's output to TO",
	Long: `patch renders FROM, then reconciles the result with TO and prints
every mutation the second render performed, followed by the final HTML.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.renderFile(args[0]); err != nil {
			return err
		}

		var mutations []dom.Mutation
		stop := s.doc.Observe(func(m dom.Mutation) {
			mutations = append(mutations, m)
		})
		err = s.renderFile(args[1])
		stop()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if patchJSON {
			return writePatchJSON(w, s, mutations)
		}
		for _, m := range mutations {
			fmt.Fprintln(w, formatMutation(m))
		}
		fmt.Fprintln(w, "---")
		return s.writeHTML(w)
	},
}

func init() {
	patchCmd.Flags().BoolVar(&patchJSON, "json", false, "print the mutation log and HTML as JSON")
	RootCmd.AddCommand(patchCmd)
}

type patchEntry struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}

func writePatchJSON(w io.Writer, s *session, mutations []dom.Mutation) error {
	out := struct {
		Mutations []patchEntry `json:"mutations"`
		HTML      string       `json:"html"`
	}{
		Mutations: make([]patchEntry, 0, len(mutations)),
		HTML:      dom.InnerHTML(s.root),
	}
	for _, m := range mutations {
		out.Mutations = append(out.Mutations, patchEntry{
			Kind:   string(m.Kind),
			Target: targetName(m.Target),
			Name:   m.Name,
			Value:  m.Value,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func formatMutation(m dom.Mutation) string {
	line := fmt.Sprintf("%-10s %s", m.Kind, targetName(m.Target))
	if m.Name != "" {
		line += " " + m.Name
	}
	if m.Value != "" {
		line += fmt.Sprintf(" %q", m.Value)
	}
	return line
}

func targetName(n dom.Node) string {
	if n == nil {
		return "-"
	}
	return n.NodeName()
}
