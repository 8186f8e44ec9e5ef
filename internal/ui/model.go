package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/one-night-werewolf/internal/game/role"
	"github.com/palemoky/one-night-werewolf/internal/protocol"
	"github.com/palemoky/one-night-werewolf/internal/transport"
)

// GamePhase 客户端界面阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseLogin
	PhaseLobby
	PhaseNight
	PhaseVoting
	PhaseResults
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功消息
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// loginStep 登录界面的输入步骤
type loginStep int

const (
	stepName loginStep = iota
	stepRoom
)

// Model 客户端主 model
type Model struct {
	client *transport.Client
	phase  GamePhase
	errMsg string

	// 玩家信息
	playerID   string
	playerName string
	roomID     string
	isHost     bool

	// 登录输入
	step  loginStep
	input textinput.Model

	// 大厅状态
	roster     []protocol.PlayerInfo
	roleCounts map[string]int
	cursor     int // 大厅角色表 / 投票名单的光标

	// 夜晚状态
	myRole      string
	activeRole  string
	isMyTurn    bool
	loneWolf    bool
	others      []protocol.PlayerInfo
	nightLog    []string // 收到的私密结果
	actionDone  bool
	firstTarget int // 捣蛋鬼已选的第一个目标，-1 表示未选

	// 投票与结算
	voteRoster []protocol.PlayerInfo
	voted      bool
	winner     string
	deadIDs    []string
	reveals    []protocol.PlayerReveal

	width  int
	height int
}

// NewModel 创建客户端 model
func NewModel(serverURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "你的昵称..."
	ti.CharLimit = 16
	ti.Width = 24
	ti.Focus()

	return &Model{
		client:      transport.NewClient(serverURL),
		phase:       PhaseConnecting,
		input:       ti,
		roleCounts:  defaultRoleCounts(),
		firstTarget: -1,
	}
}

// defaultRoleCounts 经典六牌局：两狼、预言家、强盗、捣蛋鬼、村民
func defaultRoleCounts() map[string]int {
	return map[string]int{
		role.Werewolf.String():     2,
		role.Seer.String():         1,
		role.Robber.String():       1,
		role.Troublemaker.String(): 1,
		role.Villager.String():     1,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
	)
}

// connectToServer 连接服务器
func (m *Model) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *Model) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ConnectedMsg:
		m.phase = PhaseLogin
		return m, m.listenForMessages()

	case ConnectionErrorMsg:
		m.errMsg = fmt.Sprintf("连接断开: %v（按 ESC 退出）", msg.Err)
		return m, nil

	case ServerMessage:
		m.handleServerMessage(msg.Msg)
		return m, m.listenForMessages()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleServerMessage 处理服务器推送，驱动界面阶段迁移
func (m *Model) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgJoined:
		if payload, err := protocol.ParsePayload[protocol.JoinedPayload](msg); err == nil {
			m.playerID = payload.PlayerID
			m.roomID = payload.RoomID
			m.phase = PhaseLobby
			m.errMsg = ""
		}

	case protocol.MsgRosterUpdate:
		if payload, err := protocol.ParsePayload[protocol.RosterUpdatePayload](msg); err == nil {
			m.roster = payload.Players
			m.isHost = len(payload.Players) > 0 && payload.Players[0].ID == m.playerID
		}

	case protocol.MsgRoleCounts:
		if payload, err := protocol.ParsePayload[protocol.RoleCountsPayload](msg); err == nil {
			m.roleCounts = payload.Counts
		}

	case protocol.MsgDealtRole:
		if payload, err := protocol.ParsePayload[protocol.DealtRolePayload](msg); err == nil {
			m.myRole = payload.Role
			m.phase = PhaseNight
			m.nightLog = nil
		}

	case protocol.MsgTurnAnnouncement:
		if payload, err := protocol.ParsePayload[protocol.TurnAnnouncementPayload](msg); err == nil {
			m.activeRole = payload.ActiveRole
			m.isMyTurn = false
			m.actionDone = false
			m.firstTarget = -1
			m.cursor = 0
		}

	case protocol.MsgYourTurn:
		if payload, err := protocol.ParsePayload[protocol.YourTurnPayload](msg); err == nil {
			m.isMyTurn = true
			m.loneWolf = payload.LoneWolf
			m.others = payload.OtherPlayers
		}

	case protocol.MsgActionResult:
		if payload, err := protocol.ParsePayload[protocol.ActionResultPayload](msg); err == nil {
			m.nightLog = append(m.nightLog, payload.Text)
			m.actionDone = true
		}

	case protocol.MsgPhaseChange:
		if payload, err := protocol.ParsePayload[protocol.PhaseChangePayload](msg); err == nil && payload.Phase == "VOTING" {
			m.phase = PhaseVoting
			m.voted = false
			m.cursor = 0
			_ = m.client.GetVoteRoster()
		}

	case protocol.MsgVoteRoster:
		if payload, err := protocol.ParsePayload[protocol.VoteRosterPayload](msg); err == nil {
			m.voteRoster = payload.Players
		}

	case protocol.MsgGameResults:
		if payload, err := protocol.ParsePayload[protocol.GameResultsPayload](msg); err == nil {
			m.phase = PhaseResults
			m.winner = payload.Winner
			m.deadIDs = payload.Dead
			m.reveals = payload.Players
		}

	case protocol.MsgSessionTerminated:
		if payload, err := protocol.ParsePayload[protocol.SessionTerminatedPayload](msg); err == nil {
			m.phase = PhaseLogin
			m.step = stepName
			m.input.SetValue("")
			m.input.Placeholder = "你的昵称..."
			m.errMsg = payload.Reason
		}

	case protocol.MsgError:
		if payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			m.errMsg = payload.Message
		}
	}
}
