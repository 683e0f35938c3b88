package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"libinspector/process"
)

func main() {
	pidFlag := flag.Int("pid", 0, "Process ID to inspect")
	nameFlag := flag.String("name", "", "Inspect the lowest PID with this name instead of --pid")
	procFlag := flag.String("proc", "/proc", "Mount point of procfs")
	threadsFlag := flag.Bool("threads", false, "Also decode every thread of the process")
	mapsFlag := flag.Bool("maps", false, "Also decode the memory maps of the process")
	strictFlag := flag.Bool("strict", false, "Fail on the first malformed maps line instead of skipping it")
	jsonFlag := flag.Bool("json", false, "Print the decoded process as JSON")
	flag.Parse()

	if *pidFlag == 0 && *nameFlag == "" {
		fmt.Println("Error: --pid or --name is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := inspectConfig{
		root:     *procFlag,
		pid:      process.ProcessID(*pidFlag),
		name:     *nameFlag,
		threads:  *threadsFlag,
		segments: *mapsFlag,
		strict:   *strictFlag,
	}

	proc, pageSize, err := inspect(cfg)
	if err != nil {
		fmt.Printf("Error inspecting process: %v\n", err)
		os.Exit(1)
	}

	if *jsonFlag {
		out, err := json.MarshalIndent(proc, "", "  ")
		if err != nil {
			fmt.Printf("Error encoding process: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	printProcess(proc, pageSize)
}

type inspectConfig struct {
	root     string
	pid      process.ProcessID
	name     string
	threads  bool
	segments bool
	strict   bool
}

func printProcess(p *process.Process, pageSize int) {
	fmt.Println(p)
	fmt.Printf("  ppid %d  pgrp %d  session %d  tty %d\n", p.ParentID, p.ParentGroupID, p.SessionID, p.TTYNr)
	fmt.Printf("  utime %d  stime %d  start %d  (clock ticks)\n", p.UTime, p.STime, p.StartTime)
	fmt.Printf("  vsize %d  rss %d bytes  threads %d  cpu %d\n", p.VSize, p.RSSBytes(pageSize), p.NumThreads, p.Processor)

	if p.IsThreaded() {
		fmt.Printf("Threads (%d):\n", len(p.Threads))
		for _, thread := range p.Threads {
			fmt.Printf("  %s\n", thread)
		}
	}

	if len(p.Segments) > 0 {
		fmt.Printf("Segments (%d):\n", len(p.Segments))
		for _, segment := range p.Segments {
			fmt.Printf("  %s\n", segment)
		}
	}
}
