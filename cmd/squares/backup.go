package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lox/squares/internal/fileutil"
)

type BackupCmd struct {
	Export BackupExportCmd `cmd:"" help:"Write the props and board as one JSON document"`
	Import BackupImportCmd `cmd:"" help:"Replace the props and board from a backup document"`
}

type BackupExportCmd struct {
	Output string `short:"o" help:"Write to a file instead of stdout"`
}

func (cmd *BackupExportCmd) Run(ctx context.Context, g *Globals) error {
	return g.withSession(func(s *session) error {
		data, err := s.svc.ExportBackup(ctx)
		if err != nil {
			return err
		}
		if cmd.Output == "" {
			_, err := s.out.Write(append(data, '\n'))
			return err
		}
		if err := fileutil.WriteFileAtomic(cmd.Output, data, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		s.logger.Info("Backup written", "file", cmd.Output, "bytes", len(data))
		return nil
	})
}

type BackupImportCmd struct {
	File string `arg:"" help:"Backup file, or - for stdin"`
}

func (cmd *BackupImportCmd) read() ([]byte, error) {
	if cmd.File == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(cmd.File)
}

func (cmd *BackupImportCmd) Run(ctx context.Context, g *Globals) error {
	data, err := cmd.read()
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	return g.withSession(func(s *session) error {
		b, err := s.svc.ImportBackup(ctx, data)
		if err != nil {
			return err
		}
		if b.Props != nil {
			s.printf("Restored props: %s, %d friends\n", b.Props.EventName, len(b.Props.Friends))
		}
		if b.Squares != nil {
			s.printf("Restored board: %d players, %d squares claimed\n", len(b.Squares.Players), b.Squares.TotalClaimed())
		}
		return nil
	})
}
