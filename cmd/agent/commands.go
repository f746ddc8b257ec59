package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"screen-agent/internal/application/port/input"
	"screen-agent/internal/config"
	"screen-agent/internal/di"
	"screen-agent/internal/infrastructure/console"
	"screen-agent/internal/infrastructure/logger"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "agent",
		Short:        "Plans a screen task and resolves each step to a located UI action.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./agent.yaml)")

	root.AddCommand(newRunCmd(&cfgFile), newWorkerCmd(&cfgFile))
	return root
}

type runFlags struct {
	task        string
	context     string
	description string
	screenshot  string
	maxSteps    int
}

func newRunCmd(cfgFile *string) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan a task against a screenshot and resolve its steps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}

			req, err := f.request(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			container, err := di.NewContainer(cfg, di.Options{ConfigPath: *cfgFile})
			if err != nil {
				return err
			}
			defer container.Close()

			container.Logger.Info("Task started", "task", req.Task, "screenshot", req.Screenshot)

			result, err := container.TaskExecutor.Execute(cmd.Context(), req)
			if err != nil {
				container.Logger.Error("Task failed", "error", err)
				return err
			}

			container.Logger.Info("Task completed", "steps", result.Steps)
			presenter := console.NewPresenter(cmd.OutOrStdout())
			presenter.ShowPlan(result.Plan)
			presenter.ShowHistory(result.History)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.task, "task", "", "task to perform (read from stdin when empty)")
	cmd.Flags().StringVar(&f.context, "context", "", "business context, or @file to read it from a file")
	cmd.Flags().StringVar(&f.description, "description", "", "process description of the task, or @file")
	cmd.Flags().StringVar(&f.screenshot, "screenshot", "", "path of the current screenshot")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "resolve at most this many plan steps (0 = all)")
	_ = cmd.MarkFlagRequired("screenshot")

	return cmd
}

func (f runFlags) request(stdin io.Reader, prompt io.Writer) (input.TaskRequest, error) {
	task := f.task
	if task == "" {
		fmt.Fprintln(prompt, "Enter the task for the agent:")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && line == "" {
			return input.TaskRequest{}, fmt.Errorf("read task: %w", err)
		}
		task = line
	}
	task = strings.TrimSpace(task)
	if task == "" {
		return input.TaskRequest{}, fmt.Errorf("task is empty")
	}

	ctxText, err := readArg(f.context)
	if err != nil {
		return input.TaskRequest{}, err
	}
	description, err := readArg(f.description)
	if err != nil {
		return input.TaskRequest{}, err
	}

	return input.TaskRequest{
		Task:            task,
		Context:         ctxText,
		TaskDescription: description,
		Screenshot:      f.screenshot,
		MaxSteps:        f.maxSteps,
	}, nil
}

// readArg returns value, or the contents of the file it names as @path.
func readArg(value string) (string, error) {
	path, ok := strings.CutPrefix(value, "@")
	if !ok {
		return value, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func newWorkerCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:    "worker",
		Short:  "Answer one inference request from stdin (started by run)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}

			log, err := logger.NewStderr(cfg.Logger.Level)
			if err != nil {
				return err
			}
			defer log.Close()

			server := di.NewWorkerServer(cfg, log)
			return server.Serve(cmd.Context(), cmd.InOrStdin(), os.Stdout)
		},
	}
}
