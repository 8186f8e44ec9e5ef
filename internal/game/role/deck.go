package role

import (
	"fmt"
	"math/rand/v2"
)

// Deck 定义一副角色牌
type Deck []Role

// BuildDeck 按房主选择的角色数量生成牌堆。
// 数量校验（玩家数 + 3）由会话层负责，这里只拒绝未知角色。
func BuildDeck(counts map[string]int) (Deck, error) {
	total := 0
	for _, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("negative role count: %d", n)
		}
		total += n
	}

	deck := make(Deck, 0, total)
	for _, r := range catalog {
		for range counts[string(r)] {
			deck = append(deck, r)
		}
	}

	if len(deck) != total {
		return nil, fmt.Errorf("role counts contain unknown roles")
	}
	return deck, nil
}

// Shuffle 均匀洗牌（Fisher–Yates）。随机源由调用方注入，测试可复现
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Counts 统计牌堆中各角色的数量
func (d Deck) Counts() map[string]int {
	counts := make(map[string]int, len(d))
	for _, r := range d {
		counts[string(r)]++
	}
	return counts
}

// Schedule 计算夜晚唤醒顺序：主唤醒序中实际入场的角色，去重、升序
func (d Deck) Schedule() []Role {
	present := make(map[Role]bool, len(d))
	for _, r := range d {
		present[r] = true
	}

	schedule := make([]Role, 0, len(wakeOrder))
	for _, r := range NightOrder() {
		if present[r] {
			schedule = append(schedule, r)
		}
	}
	return schedule
}
