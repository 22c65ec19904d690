package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/squares/internal/config"
	"github.com/lox/squares/internal/service"
	"github.com/lox/squares/internal/squares"
)

const cellWidth = 5

var contrastHex = map[string]string{
	"black": "#000000",
	"white": "#FFFFFF",
}

// view renders boards and tables for one output stream.
type view struct {
	r     *lipgloss.Renderer
	teams config.TeamsConfig

	headerStyle    lipgloss.Style
	teamStyle      lipgloss.Style
	digitStyle     lipgloss.Style
	emptyStyle     lipgloss.Style
	winnerStyle    lipgloss.Style
	extraStyle     lipgloss.Style
	completeStyle  lipgloss.Style
	remainingStyle lipgloss.Style
}

func newView(w io.Writer, noColor bool, teams config.TeamsConfig) *view {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &view{
		r:     r,
		teams: teams,
		headerStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),
		teamStyle: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")),
		digitStyle: r.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(lipgloss.Color("11")),
		emptyStyle: r.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("8")),
		winnerStyle: r.NewStyle().
			Bold(true).
			Underline(true),
		extraStyle: r.NewStyle().
			Foreground(lipgloss.Color("13")),
		completeStyle: r.NewStyle().
			Foreground(lipgloss.Color("10")),
		remainingStyle: r.NewStyle().
			Foreground(lipgloss.Color("9")),
	}
}

// headerTeams returns the team named along the columns and along the rows.
func (v *view) headerTeams(o squares.Orientation) (cols, rows string) {
	if o == squares.OrientationARows {
		return v.teams.B, v.teams.A
	}
	return v.teams.A, v.teams.B
}

func digitLabel(numbers []int, i int) string {
	if numbers == nil {
		return "?"
	}
	return strconv.Itoa(numbers[i])
}

// winningCells maps each recorded winner back to the square it resolved to.
func winningCells(st *squares.State) map[squares.Cell][]squares.Checkpoint {
	out := make(map[squares.Cell][]squares.Checkpoint, len(st.Winners))
	if !st.DigitsAssigned() {
		return out
	}
	for _, w := range st.Winners {
		c := squares.Cell{
			Row: slices.Index(st.RowNumbers, w.DigitA),
			Col: slices.Index(st.ColNumbers, w.DigitB),
		}
		out[c] = append(out[c], w.Checkpoint)
	}
	return out
}

func (v *view) cellStyle(p *squares.Player) lipgloss.Style {
	fg := contrastHex[squares.ContrastColor(p.Color)]
	return v.r.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Background(lipgloss.Color(p.Color)).
		Foreground(lipgloss.Color(fg))
}

// Board renders the grid with digit headers and a winner legend.
func (v *view) Board(st *squares.State) string {
	colTeam, rowTeam := v.headerTeams(st.Orientation)
	wins := winningCells(st)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", cellWidth))
	b.WriteString(v.teamStyle.Render(colTeam + " →"))
	b.WriteString("\n")

	b.WriteString(v.digitStyle.Render(""))
	for col := 0; col < squares.GridSize; col++ {
		b.WriteString(v.digitStyle.Render(digitLabel(st.ColNumbers, col)))
	}
	b.WriteString("\n")

	for row := 0; row < squares.GridSize; row++ {
		b.WriteString(v.digitStyle.Render(digitLabel(st.RowNumbers, row)))
		for col := 0; col < squares.GridSize; col++ {
			c := squares.Cell{Row: row, Col: col}
			sq, _ := st.Square(c)
			p, ok := st.Player(sq.OwnerID)
			label := "·"
			style := v.emptyStyle
			if ok {
				label = p.Label()
				style = v.cellStyle(p)
			}
			if _, won := wins[c]; won {
				label += "*"
				style = style.Inherit(v.winnerStyle)
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}
	b.WriteString(v.teamStyle.Render("↓ " + rowTeam))
	b.WriteString("\n")

	if len(st.Winners) > 0 {
		b.WriteString("\n")
		b.WriteString(v.Winners(st.Winners))
	}
	return b.String()
}

// Winners renders the winner ledger in checkpoint order.
func (v *view) Winners(winners []squares.WinnerRecord) string {
	var b strings.Builder
	b.WriteString(v.headerStyle.Render("Winners"))
	b.WriteString("\n")
	for _, c := range squares.Checkpoints {
		for _, w := range winners {
			if w.Checkpoint != c {
				continue
			}
			name := "-"
			if w.WinningPlayerName != nil {
				name = *w.WinningPlayerName
			}
			fmt.Fprintf(&b, "  %-5s %s %d - %s %d  (%d/%d)  %s",
				w.Checkpoint, v.teams.A, w.ScoreA, v.teams.B, w.ScoreB, w.DigitA, w.DigitB, name)
			if w.PayoutAmount != nil {
				fmt.Fprintf(&b, "  $%.2f", *w.PayoutAmount)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Status renders per-player progress and the board's phase.
func (v *view) Status(sum service.Status) string {
	var b strings.Builder
	b.WriteString(v.headerStyle.Render(fmt.Sprintf("%-20s %8s %6s", "Player", "Squares", "Extra")))
	b.WriteString("\n")
	for _, ps := range sum.Players {
		count := fmt.Sprintf("%d/%d", ps.Claimed, ps.Quota)
		style := v.remainingStyle
		if ps.Claimed >= ps.Quota {
			style = v.completeStyle
		}
		extra := ""
		if ps.Extra {
			extra = v.extraStyle.Render("+1")
		}
		fmt.Fprintf(&b, "%-20s %s %6s\n", ps.Player.Name, style.Render(fmt.Sprintf("%8s", count)), extra)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Base quota:   %d (remainder %d)\n", sum.BaseQuota, sum.Remainder)
	fmt.Fprintf(&b, "Claimed:      %d, unclaimed %d\n", sum.Claimed, sum.Unclaimed)
	fmt.Fprintf(&b, "Base round:   %s\n", yesNo(sum.BaseRoundComplete))
	fmt.Fprintf(&b, "Extras:       %s\n", extrasPhase(sum))
	fmt.Fprintf(&b, "Locked:       %s\n", yesNo(sum.Locked))
	fmt.Fprintf(&b, "Orientation:  %s\n", sum.Orientation)
	fmt.Fprintf(&b, "Winners:      %d/%d\n", sum.Winners, len(squares.Checkpoints))
	return b.String()
}

// Players renders the registry.
func (v *view) Players(st *squares.State) string {
	var b strings.Builder
	b.WriteString(v.headerStyle.Render(fmt.Sprintf("%-20s %-4s %-8s %s", "Name", "Tag", "Color", "ID")))
	b.WriteString("\n")
	for i := range st.Players {
		p := &st.Players[i]
		swatch := v.cellStyle(p).Width(4).Render(p.Label())
		fmt.Fprintf(&b, "%-20s %s %-8s %s\n", p.Name, swatch, p.Color, p.ID)
	}
	return b.String()
}

func extrasPhase(sum service.Status) string {
	switch {
	case sum.Remainder == 0:
		return "none to hand out"
	case sum.ExtrasAssigned:
		return "assigned"
	case sum.CanAssignExtras:
		return "ready to assign"
	}
	return "waiting for base round"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
