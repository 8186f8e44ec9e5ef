package ui

import (
	"fmt"
	"strings"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
)

func (m *Model) View() string {
	var b strings.Builder

	switch m.phase {
	case PhaseConnecting:
		b.WriteString(titleStyle("🐺 一夜狼人"))
		b.WriteString("\n\n正在连接服务器...\n")

	case PhaseLogin:
		b.WriteString(titleStyle("🐺 一夜狼人"))
		b.WriteString("\n\n")
		if m.step == stepName {
			b.WriteString("请输入昵称:\n")
		} else {
			b.WriteString(fmt.Sprintf("你好，%s！请输入房间号:\n", m.playerName))
		}
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Enter 确认 · ESC 退出"))

	case PhaseLobby:
		b.WriteString(m.viewLobby())

	case PhaseNight:
		b.WriteString(m.viewNight())

	case PhaseVoting:
		b.WriteString(m.viewVoting())

	case PhaseResults:
		b.WriteString(m.viewResults())
	}

	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.errMsg))
	}

	return docStyle.Render(b.String())
}

func (m *Model) viewLobby() string {
	var b strings.Builder
	b.WriteString(titleStyle(fmt.Sprintf("🏠 房间 %s", m.roomID)))
	b.WriteString("\n\n玩家:\n")
	for _, p := range m.roster {
		if p.IsHost {
			b.WriteString(hostStyle.Render(fmt.Sprintf("  👑 %s", p.Name)))
		} else {
			b.WriteString(fmt.Sprintf("  👤 %s", p.Name))
		}
		b.WriteString("\n")
	}

	if m.isHost {
		need := len(m.roster) + 3
		total := 0
		for _, n := range m.roleCounts {
			total += n
		}

		b.WriteString(fmt.Sprintf("\n角色配置（%d/%d 张）:\n", total, need))
		var rows []string
		for i, r := range role.All() {
			marker := "  "
			if i == m.cursor {
				marker = cursorStyle.Render("▸ ")
			}
			rows = append(rows, fmt.Sprintf("%s%-13s %d", marker, r, m.roleCounts[r.String()]))
		}
		b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("↑↓ 选择 · ←→ 调整数量 · Enter 开局"))
	} else {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("等待房主开局..."))
	}
	return b.String()
}

func (m *Model) viewNight() string {
	var b strings.Builder
	b.WriteString(titleStyle("🌙 夜晚"))
	b.WriteString(fmt.Sprintf("\n\n你的身份: %s\n", wolfStyle.Render(m.myRole)))
	if m.activeRole != "" {
		b.WriteString(fmt.Sprintf("当前回合: %s\n", m.activeRole))
	}

	for _, line := range m.nightLog {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(line))
	}

	if m.isMyTurn {
		b.WriteString("\n\n")
		b.WriteString(hostStyle.Render("轮到你行动了！"))
		b.WriteString("\n")
		b.WriteString(m.nightHints())
	} else {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("闭眼等待..."))
	}
	return b.String()
}

// nightHints 当前角色可用的操作提示
func (m *Model) nightHints() string {
	var lines []string

	showTargets := func() {
		for i, p := range m.others {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, p.Name))
		}
	}

	switch m.myRole {
	case role.Werewolf.String():
		if m.loneWolf {
			lines = append(lines, "c 查看一张中央牌（独狼）")
		}
	case role.Minion.String():
		lines = append(lines, "c 查看狼是谁")
	case role.Mason.String():
		lines = append(lines, "c 查看其他守夜人")
	case role.Insomniac.String():
		lines = append(lines, "c 查看自己当前的牌")
	case role.Drunk.String():
		lines = append(lines, "c 与随机中央牌互换")
	case role.Seer.String():
		showTargets()
		lines = append(lines, "数字键查验玩家 · c 查看两张中央牌")
	case role.Robber.String():
		showTargets()
		lines = append(lines, "数字键偷取该玩家的牌")
	case role.Troublemaker.String():
		showTargets()
		if m.firstTarget >= 0 {
			lines = append(lines, fmt.Sprintf("已选 %s，再按一个数字键完成互换", m.others[m.firstTarget].Name))
		} else {
			lines = append(lines, "按两个数字键互换两名玩家的牌")
		}
	}

	lines = append(lines, dimStyle.Render("d 行动完毕"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewVoting() string {
	var b strings.Builder
	b.WriteString(titleStyle("🗳️ 投票"))
	b.WriteString("\n\n讨论结束后，把票投给你怀疑的人:\n\n")

	for i, p := range m.voteRoster {
		marker := "  "
		if i == m.cursor && !m.voted {
			marker = cursorStyle.Render("▸ ")
		}
		name := p.Name
		if p.ID == m.playerID {
			name += dimStyle.Render("（你自己）")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, name))
	}

	b.WriteString("\n")
	if m.voted {
		b.WriteString(dimStyle.Render("已投票，等待其他玩家..."))
	} else {
		b.WriteString(dimStyle.Render("↑↓ 选择 · Enter 投票"))
	}
	return b.String()
}

func (m *Model) viewResults() string {
	dead := make(map[string]bool, len(m.deadIDs))
	for _, id := range m.deadIDs {
		dead[id] = true
	}

	var b strings.Builder
	b.WriteString(titleStyle("🏆 " + m.winner))
	b.WriteString("\n\n身份揭示:\n")

	var rows []string
	for _, p := range m.reveals {
		line := fmt.Sprintf("%-10s %s", p.Name, p.OriginalRole)
		if p.CurrentRole != p.OriginalRole {
			line += fmt.Sprintf(" → %s", p.CurrentRole)
		}
		if dead[p.ID] {
			line = deadStyle.Render(line + " 💀")
		}
		rows = append(rows, line)
	}
	b.WriteString(boxStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("q 退出"))
	return b.String()
}
