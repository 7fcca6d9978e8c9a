// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

const progressBarWidth = 40

// Progress counts processed items over a known total. It is rendered as a
// single redrawn line on out; a nil out keeps it silent.
type Progress struct {
	label string
	total int
	done  int
	out   io.Writer
	bar   progress.Model
}

func NewProgress(label string, total int, out io.Writer) *Progress {
	p := &Progress{
		label: label,
		total: total,
		out:   out,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(progressBarWidth),
			progress.WithoutPercentage(),
		),
	}
	p.render()
	return p
}

// Iter marks one item as processed, whatever its outcome.
func (p *Progress) Iter() {
	p.done++
	p.render()
}

func (p *Progress) Done() int  { return p.done }
func (p *Progress) Total() int { return p.total }

// Finish terminates the progress line.
func (p *Progress) Finish() {
	if p.out != nil {
		_, _ = fmt.Fprintln(p.out)
	}
}

func (p *Progress) render() {
	if p.out == nil {
		return
	}
	pct := 1.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total)
	}
	_, _ = fmt.Fprintf(p.out, "\r%s %s %d/%d", p.label, p.bar.ViewAs(pct), p.done, p.total)
}
