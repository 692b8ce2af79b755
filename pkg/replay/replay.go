// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

// Package replay runs line-oriented operation scripts against a ring buffer.
//
// A script holds one operation per line:
//
//	push_back V | push_front V
//	pop_front | pop_back | peek_front | peek_back
//	push V | pop | peek
//	status | len | clear | dump
//
// push, pop and peek follow the queue policy: push appends at the back,
// pop and peek read the front for FIFO and the back for LIFO.
// Blank lines and text after '#' are ignored.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flowbehappy/ringq/pkg/apperror"
	"github.com/flowbehappy/ringq/utils/boundedqueue"
	"github.com/flowbehappy/ringq/utils/ringbuffer"
	"github.com/goccy/go-json"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

const (
	OpPushBack  = "push_back"
	OpPushFront = "push_front"
	OpPopFront  = "pop_front"
	OpPopBack   = "pop_back"
	OpPeekFront = "peek_front"
	OpPeekBack  = "peek_back"
	OpPush      = "push"
	OpPop       = "pop"
	OpPeek      = "peek"
	OpStatus    = "status"
	OpLen       = "len"
	OpClear     = "clear"
	OpDump      = "dump"
)

// arity is the number of arguments each op takes.
var arity = map[string]int{
	OpPushBack:  1,
	OpPushFront: 1,
	OpPopFront:  0,
	OpPopBack:   0,
	OpPeekFront: 0,
	OpPeekBack:  0,
	OpPush:      1,
	OpPop:       0,
	OpPeek:      0,
	OpStatus:    0,
	OpLen:       0,
	OpClear:     0,
	OpDump:      0,
}

type Command struct {
	Line int
	Op   string
	Arg  string
}

type Result struct {
	Line     int      `json:"line"`
	Op       string   `json:"op"`
	Value    string   `json:"value,omitempty"`
	Status   string   `json:"status"`
	State    string   `json:"state"`
	Len      int      `json:"len"`
	Contents []string `json:"contents,omitempty"`
}

// Parse reads a script. Values of push ops are taken verbatim after the op,
// so they may contain spaces.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		op, arg, _ := strings.Cut(line, " ")
		op = strings.ToLower(op)
		arg = strings.TrimSpace(arg)
		n, ok := arity[op]
		if !ok {
			return nil, apperror.ErrInvalidScript.GenWithStackByArgs(lineNo, fmt.Sprintf("unknown op %q", op))
		}
		if n == 1 && arg == "" {
			return nil, apperror.ErrInvalidScript.GenWithStackByArgs(lineNo, op+" needs a value")
		}
		if n == 0 && arg != "" {
			return nil, apperror.ErrInvalidScript.GenWithStackByArgs(lineNo, op+" takes no value")
		}
		cmds = append(cmds, Command{Line: lineNo, Op: op, Arg: arg})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	return cmds, nil
}

// Run applies cmds to rb in order and reports one result per command.
// push, pop and peek go through a queue with the given policy over rb.
func Run(rb *ringbuffer.RingBuffer[string], policy boundedqueue.Policy, cmds []Command) ([]Result, error) {
	q, err := boundedqueue.Wrap(rb, policy)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(cmds))
	for _, cmd := range cmds {
		res := Result{Line: cmd.Line, Op: cmd.Op}
		var st ringbuffer.Status
		switch cmd.Op {
		case OpPushBack:
			res.Value = cmd.Arg
			st = rb.PushBack(cmd.Arg)
		case OpPushFront:
			res.Value = cmd.Arg
			st = rb.PushFront(cmd.Arg)
		case OpPopFront:
			res.Value, st = rb.PopFront()
		case OpPopBack:
			res.Value, st = rb.PopBack()
		case OpPeekFront:
			res.Value, st = rb.PeekFront()
		case OpPeekBack:
			res.Value, st = rb.PeekBack()
		case OpPush:
			res.Value = cmd.Arg
			st = q.Push(cmd.Arg)
		case OpPop:
			res.Value, st = q.Pop()
		case OpPeek:
			res.Value, st = q.Peek()
		case OpStatus:
			if rb.State() == ringbuffer.StateInvalid {
				st = ringbuffer.StatusFailure
			}
		case OpLen:
			res.Value = strconv.Itoa(rb.Len())
		case OpClear:
			st = rb.Clear()
		case OpDump:
			res.Contents = rb.ToSlice()
		}
		res.Status = st.String()
		res.State = rb.State().String()
		res.Len = rb.Len()
		log.Debug("replay command",
			zap.Int("line", cmd.Line), zap.String("op", cmd.Op),
			zap.String("status", res.Status), zap.Int("len", res.Len))
		results = append(results, res)
	}
	return results, nil
}

func WriteText(w io.Writer, results []Result) error {
	for _, res := range results {
		var err error
		switch {
		case res.Op == OpDump:
			_, err = fmt.Fprintf(w, "%d: %s -> [%s] %s len=%d\n",
				res.Line, res.Op, strings.Join(res.Contents, " "), res.State, res.Len)
		case res.Value != "":
			_, err = fmt.Fprintf(w, "%d: %s %s -> %s %s len=%d\n",
				res.Line, res.Op, res.Value, res.Status, res.State, res.Len)
		default:
			_, err = fmt.Fprintf(w, "%d: %s -> %s %s len=%d\n",
				res.Line, res.Op, res.Status, res.State, res.Len)
		}
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func WriteJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Trace(enc.Encode(results))
}
