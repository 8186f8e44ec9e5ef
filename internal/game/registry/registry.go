package registry

import (
	"log"
	"sync"
	"time"

	"github.com/palemoky/one-night-werewolf/internal/game/session"
	"github.com/palemoky/one-night-werewolf/internal/types"
)

// Deps 新会话的公共依赖，由注册表透传
type Deps struct {
	Recorder     session.ResultRecorder
	GhostTurnMin time.Duration
	GhostTurnMax time.Duration
}

// Registry 房间注册表：按房间号索引所有存活的会话。
// 房间在第一次被引用时创建，在房主离开或人走光时销毁。
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*session.Session
	deps  Deps
}

// New 创建注册表
func New(deps Deps) *Registry {
	return &Registry{
		rooms: make(map[string]*session.Session),
		deps:  deps,
	}
}

// Join 将玩家加入指定房间，房间不存在则创建。
// 加入失败（重名）时房间状态不变；新建房间在加入失败后立即回收。
func (r *Registry) Join(client types.ClientInterface, roomID string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.rooms[roomID]
	if !exists {
		s = session.New(roomID, session.Deps{
			Recorder:     r.deps.Recorder,
			GhostTurnMin: r.deps.GhostTurnMin,
			GhostTurnMax: r.deps.GhostTurnMax,
		})
		r.rooms[roomID] = s
		log.Printf("🏠 房间 %s 已创建", roomID)
	}

	if err := s.AddPlayer(client); err != nil {
		if !exists {
			delete(r.rooms, roomID)
		}
		return nil, err
	}
	return s, nil
}

// Get 获取房间，不存在返回 nil
func (r *Registry) Get(roomID string) *session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rooms[roomID]
}

// Departed 处理玩家离开（断线或主动退出）。
// 房主离开直接销毁整个房间；其余玩家离开交给会话处理，人走光后回收房间。
func (r *Registry) Departed(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	r.mu.Lock()
	s, exists := r.rooms[roomID]
	r.mu.Unlock()
	if !exists {
		return
	}

	if s.IsHost(client.GetID()) {
		s.Terminate("Host disconnected.")
		r.remove(roomID)
		return
	}

	s.HandleDeparture(client.GetID())
	client.SetRoom("")

	if s.PlayerCount() == 0 {
		r.remove(roomID)
	}
}

// InProgressCount 统计仍在夜晚或投票阶段的房间数（用于优雅关闭）
func (r *Registry) InProgressCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, s := range r.rooms {
		if s.InProgress() {
			count++
		}
	}
	return count
}

// RoomCount 返回存活房间总数
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func (r *Registry) remove(roomID string) {
	r.mu.Lock()
	delete(r.rooms, roomID)
	r.mu.Unlock()
	log.Printf("🧹 房间 %s 已回收", roomID)
}
