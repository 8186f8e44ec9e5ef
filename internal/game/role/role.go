package role

import "fmt"

// Role 角色牌的身份。牌是可互换的值对象，在玩家和中央牌堆之间流转，
// 牌本身不绑定能力：能力始终跟随玩家开局拿到的 originalRole。
type Role string

const (
	Werewolf     Role = "Werewolf"
	Minion       Role = "Minion"
	Mason        Role = "Mason"
	Seer         Role = "Seer"
	Robber       Role = "Robber"
	Troublemaker Role = "Troublemaker"
	Drunk        Role = "Drunk"
	Insomniac    Role = "Insomniac"
	Villager     Role = "Villager"
	Hunter       Role = "Hunter"
)

// wakeOrder 夜晚唤醒优先级。数值越小越先行动；
// 不在表里的角色（村民、猎人）夜晚不醒。
var wakeOrder = map[Role]int{
	Werewolf:     1,
	Minion:       2,
	Mason:        3,
	Seer:         4,
	Robber:       5,
	Troublemaker: 6,
	Drunk:        7,
	Insomniac:    8,
}

// catalog 可选角色全集，按 UI 展示顺序排列
var catalog = []Role{
	Werewolf, Minion, Seer, Robber, Troublemaker,
	Insomniac, Drunk, Villager, Mason, Hunter,
}

// All 返回可选角色全集
func All() []Role {
	out := make([]Role, len(catalog))
	copy(out, catalog)
	return out
}

// Valid 判断角色名是否在目录中
func Valid(r Role) bool {
	for _, c := range catalog {
		if c == r {
			return true
		}
	}
	return false
}

// WakeOrder 返回角色的夜晚唤醒优先级，第二个返回值表示该角色夜晚是否会醒
func (r Role) WakeOrder() (int, bool) {
	order, ok := wakeOrder[r]
	return order, ok
}

// String 实现 fmt.Stringer
func (r Role) String() string {
	return string(r)
}

// Parse 将角色名解析为 Role
func Parse(name string) (Role, error) {
	r := Role(name)
	if !Valid(r) {
		return "", fmt.Errorf("unknown role: %q", name)
	}
	return r, nil
}

// NightOrder 返回会在夜晚醒来的角色，按唤醒优先级升序
func NightOrder() []Role {
	out := make([]Role, 0, len(wakeOrder))
	for _, r := range catalog {
		if _, wakes := wakeOrder[r]; wakes {
			out = append(out, r)
		}
	}
	sortByWake(out)
	return out
}

func sortByWake(roles []Role) {
	// 角色数量只有个位数，插入排序足够
	for i := 1; i < len(roles); i++ {
		for j := i; j > 0 && wakeOrder[roles[j]] < wakeOrder[roles[j-1]]; j-- {
			roles[j], roles[j-1] = roles[j-1], roles[j]
		}
	}
}
