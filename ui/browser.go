package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/gom-savior/ds"
	"github.com/thanhnguyen2187/gom-savior/gom/gnode"
	"github.com/thanhnguyen2187/gom-savior/gom/gvalue"
)

type (
	Item struct {
		Label string
		// Open builds the frame shown on Enter; nil when the item is a leaf.
		Open func() Frame
	}
	Frame struct {
		Title  string
		Items  []Item
		Cursor int
	}
	// Browser walks from the records of an export down into their fields
	// and nested containers. Every level is a frame on the history stack.
	Browser struct {
		history  *ds.Stack[Frame]
		quitting bool
	}
)

const (
	maxVisibleItems = 20
	maxPreviewWidth = 60
)

func NewBrowser(source string, pairs []gnode.NodeObjPair) *Browser {
	history := ds.NewStack[Frame]()
	history.Push(recordsFrame(source, pairs))
	return &Browser{
		history: history,
	}
}

func recordsFrame(source string, pairs []gnode.NodeObjPair) Frame {
	return Frame{
		Title: fmt.Sprintf("%s: %d records", source, len(pairs)),
		Items: lo.Map(pairs, func(pair gnode.NodeObjPair, _ int) Item {
			return Item{
				Label: fmt.Sprintf("%s  (%d fields)", pair.Node.FQN, len(pair.Fields)),
				Open: func() Frame {
					return fieldsFrame(pair)
				},
			}
		}),
	}
}

func fieldsFrame(pair gnode.NodeObjPair) Frame {
	return Frame{
		Title: fmt.Sprintf("%s [%s]", pair.Node.FQN, pair.Node.ID),
		Items: lo.Map(pair.Fields, func(field gnode.Field, _ int) Item {
			return valueItem(field.ID, field.Value)
		}),
	}
}

func valueItem(label string, value gvalue.FieldValue) Item {
	item := Item{
		Label: fmt.Sprintf("%s: %s", label, Summary(value)),
	}
	switch value := value.(type) {
	case gvalue.List:
		item.Open = func() Frame {
			return Frame{
				Title: label,
				Items: lo.Map(value.Values(), func(element gvalue.FieldValue, i int) Item {
					return valueItem(fmt.Sprintf("[%d]", i), element)
				}),
			}
		}
	case gvalue.LookupList:
		item.Open = func() Frame {
			return Frame{
				Title: label,
				Items: lo.Map(value.Pairs(), func(pair gvalue.Pair, _ int) Item {
					return valueItem(Summary(pair.Key), pair.Value)
				}),
			}
		}
	}
	return item
}

// Summary is a one-line preview of a value.
func Summary(value gvalue.FieldValue) string {
	switch value := value.(type) {
	case gvalue.List:
		return fmt.Sprintf("List<%s>[%d]", value.ElemType(), value.Len())
	case gvalue.LookupList:
		return fmt.Sprintf("LookupList<%s, %s>[%d]", value.KeyType(), value.ValueType(), value.Len())
	case gvalue.Opaque:
		return fmt.Sprintf("%s %s", value.TypeCode(), truncate(string(value.Raw())))
	}
	return truncate(ds.DumpJSON(gvalue.Plain(value)))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxPreviewWidth {
		return s
	}
	return string(runes[:maxPreviewWidth]) + "..."
}

func (r *Browser) Current() Frame {
	return r.history.Peek()
}

func (r *Browser) Depth() int {
	return r.history.Len()
}

func (r *Browser) Init() tea.Cmd {
	return nil
}

func (r *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		r.quitting = true
		return r, tea.Quit
	case "up", "k":
		r.moveCursor(-1)
	case "down", "j":
		r.moveCursor(1)
	case "enter":
		frame := r.history.Peek()
		if len(frame.Items) == 0 {
			break
		}
		if open := frame.Items[frame.Cursor].Open; open != nil {
			r.history.Push(open())
		}
	case "esc", "backspace":
		if r.history.Len() > 1 {
			r.history.Pop()
		}
	}
	return r, nil
}

func (r *Browser) moveCursor(delta int) {
	r.history.ReplaceLast(func(frame Frame) Frame {
		frame.Cursor = max(0, min(frame.Cursor+delta, len(frame.Items)-1))
		return frame
	})
}

func (r *Browser) View() string {
	if r.quitting {
		return ""
	}
	frame := r.history.Peek()

	builder := strings.Builder{}
	builder.WriteString("GOM SAVIOR\n\n")
	builder.WriteString(frame.Title + "\n\n")

	start := 0
	if frame.Cursor >= maxVisibleItems {
		start = frame.Cursor - maxVisibleItems + 1
	}
	end := min(start+maxVisibleItems, len(frame.Items))
	for i := start; i < end; i++ {
		cursor := "  "
		if i == frame.Cursor {
			cursor = "> "
		}
		marker := ""
		if frame.Items[i].Open != nil {
			marker = " +"
		}
		builder.WriteString(cursor + frame.Items[i].Label + marker + "\n")
	}
	if len(frame.Items) == 0 {
		builder.WriteString("  (empty)\n")
	}

	builder.WriteString("\nup/down: move  enter: open  esc: back  q: quit\n")
	return builder.String()
}
