package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
)

// handleKeyPress 按当前阶段分发按键
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.client.Close()
		return m, tea.Quit
	}

	switch m.phase {
	case PhaseConnecting:
		if msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}

	case PhaseLogin:
		return m.handleLoginKey(msg)

	case PhaseLobby:
		return m.handleLobbyKey(msg)

	case PhaseNight:
		return m.handleNightKey(msg)

	case PhaseVoting:
		return m.handleVotingKey(msg)

	case PhaseResults:
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			m.client.Close()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleLoginKey 昵称与房间号两步输入
func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		if m.step == stepName {
			m.playerName = value
			m.step = stepRoom
			m.input.SetValue("")
			m.input.Placeholder = "房间号..."
			return m, nil
		}
		m.roomID = value
		_ = m.client.Join(m.playerName, m.roomID)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleLobbyKey 大厅：房主用 ↑↓ 选角色、←→ 调数量、Enter 开局
func (m *Model) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.isHost {
		return m, nil
	}

	catalog := role.All()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(catalog)-1 {
			m.cursor++
		}
	case "left", "h":
		name := catalog[m.cursor].String()
		if m.roleCounts[name] > 0 {
			m.roleCounts[name]--
		}
	case "right", "l":
		name := catalog[m.cursor].String()
		m.roleCounts[name]++
	case "enter":
		counts := make(map[string]int)
		for name, n := range m.roleCounts {
			if n > 0 {
				counts[name] = n
			}
		}
		_ = m.client.StartGame(counts)
	}
	return m, nil
}

// handleNightKey 夜晚：数字键选目标，快捷键触发能力，d 宣告回合结束
func (m *Model) handleNightKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.isMyTurn {
		return m, nil
	}

	key := msg.String()

	// 回合结束信号独立于能力行动
	if key == "d" {
		_ = m.client.TurnDone()
		m.isMyTurn = false
		return m, nil
	}
	if m.actionDone {
		return m, nil
	}

	switch m.myRole {
	case role.Werewolf.String():
		if m.loneWolf && key == "c" {
			_ = m.client.NightAction(protocol.NightActionPayload{Action: protocol.ActionTargetCenter})
		}
	case role.Minion.String():
		if key == "c" {
			_ = m.client.NightAction(protocol.NightActionPayload{Action: protocol.ActionCheckWolves})
		}
	case role.Mason.String():
		if key == "c" {
			_ = m.client.NightAction(protocol.NightActionPayload{Action: protocol.ActionCheckMasons})
		}
	case role.Insomniac.String():
		if key == "c" {
			_ = m.client.NightAction(protocol.NightActionPayload{Action: protocol.ActionCheckSelf})
		}
	case role.Drunk.String():
		if key == "c" {
			_ = m.client.NightAction(protocol.NightActionPayload{Action: protocol.ActionTargetCenter})
		}
	case role.Seer.String():
		if key == "c" {
			_ = m.client.NightAction(protocol.NightActionPayload{Action: protocol.ActionTargetCenter})
			return m, nil
		}
		if idx, ok := numberKey(key, len(m.others)); ok {
			_ = m.client.NightAction(protocol.NightActionPayload{
				Action:   protocol.ActionTargetPlayer,
				TargetID: m.others[idx].ID,
			})
		}
	case role.Robber.String():
		if idx, ok := numberKey(key, len(m.others)); ok {
			_ = m.client.NightAction(protocol.NightActionPayload{
				Action:   protocol.ActionTargetPlayer,
				TargetID: m.others[idx].ID,
			})
		}
	case role.Troublemaker.String():
		if idx, ok := numberKey(key, len(m.others)); ok {
			if m.firstTarget == -1 {
				m.firstTarget = idx
				return m, nil
			}
			if idx != m.firstTarget {
				_ = m.client.NightAction(protocol.NightActionPayload{
					Action:    protocol.ActionTargetPlayer,
					TargetID1: m.others[m.firstTarget].ID,
					TargetID2: m.others[idx].ID,
				})
				m.firstTarget = -1
			}
		}
	}
	return m, nil
}

// handleVotingKey 投票：↑↓ 移动光标，Enter 投票
func (m *Model) handleVotingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.voted || len(m.voteRoster) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.voteRoster)-1 {
			m.cursor++
		}
	case "enter":
		_ = m.client.CastVote(m.voteRoster[m.cursor].ID)
		m.voted = true
	}
	return m, nil
}

// numberKey 将 "1".."9" 映射为下标，越界返回 false
func numberKey(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	idx := int(key[0] - '1')
	if idx >= n {
		return 0, false
	}
	return idx, true
}
