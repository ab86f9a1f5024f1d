package main

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"emperror.dev/errors"
	"github.com/CarterFendley/pit/internal/meta"
	"github.com/CarterFendley/pit/internal/utils/timeutils"
	"github.com/kr/text"
	"github.com/spf13/cobra"
)

var showTemplate = template.Must(template.New("show").Parse(
	`snapshot {{.ID}}
commit:  {{.GitHash}}
ref:     {{.Ref}}
date:    {{.Date}} ({{.Relative}})
{{- if .Author}}
author:  {{.Author}}
{{- end}}
{{- if .Message}}

{{.Message}}
{{- end}}
{{- if .Paths}}

paths:
{{.Paths}}
{{- end}}
`))

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the details of a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := getRepo(ctx)
		if err != nil {
			return err
		}
		s, err := getStore(ctx, repo)
		if err != nil {
			return err
		}
		snap, ok := s.DB().ReadTx().Snapshot(args[0])
		if !ok {
			return errors.WrapIff(errSnapshotNotFound, "snapshot %q", args[0])
		}
		out, err := formatSnapshot(snap, time.Now())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func formatSnapshot(snap meta.Snapshot, now time.Time) (string, error) {
	author := snap.User
	if snap.Host != "" {
		author += "@" + snap.Host
	}
	data := struct {
		ID       string
		GitHash  string
		Ref      string
		Date     string
		Relative string
		Author   string
		Message  string
		Paths    string
	}{
		ID:       snap.ID,
		GitHash:  snap.GitHash,
		Ref:      snap.Ref(),
		Date:     timeutils.FormatLocal(snap.CreatedAt),
		Relative: timeutils.FormatRelative(snap.CreatedAt, now),
		Author:   author,
		Message:  text.Indent(snap.Message, "    "),
	}
	if len(snap.Paths) > 0 {
		data.Paths = text.Indent(strings.Join(snap.Paths, "\n"), "    ")
	}
	var sb strings.Builder
	if err := showTemplate.Execute(&sb, data); err != nil {
		return "", errors.WrapIf(err, "failed to render snapshot")
	}
	return sb.String(), nil
}
