//go:build linux

package main

import (
	"libinspector/process"
	"libinspector/process_linux"

	"golang.org/x/sys/unix"
)

func inspect(cfg inspectConfig) (*process.Process, int, error) {
	in := process_linux.NewInspector(cfg.root)
	in.Strict = cfg.strict

	pid := cfg.pid
	if cfg.name != "" {
		p, err := in.OneByName(cfg.name)
		if err != nil {
			return nil, 0, err
		}
		pid = p.ProcessID
	}

	p, err := in.Inspect(pid, process_linux.InspectOptions{
		Threads:  cfg.threads,
		Segments: cfg.segments,
	})
	if err != nil {
		return nil, 0, err
	}

	return p, unix.Getpagesize(), nil
}
