package event

import (
	"fmt"
	"strconv"
	"strings"

	json "github.com/bytedance/sonic"
)

const (
	rankChangedTopicPrefix = "contest-rank-changed:"
	// BalloonChangeTopic 气球状态变化, 所有比赛共用
	BalloonChangeTopic = "balloon-change"
)

// RankChangedTopic 比赛排行榜变化的通知 topic
func RankChangedTopic(tid int64) string {
	return rankChangedTopicPrefix + strconv.FormatInt(tid, 10)
}

// ParseRankChangedTopic 从 topic 解析比赛 id
func ParseRankChangedTopic(topic string) (int64, bool) {
	s, ok := strings.CutPrefix(topic, rankChangedTopicPrefix)
	if !ok {
		return 0, false
	}
	tid, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return tid, true
}

// RankChangedPattern 订阅所有比赛排行榜变化的通配模式
const RankChangedPattern = rankChangedTopicPrefix + "*"

type RankChangedMessage struct {
	Type string `json:"type"`
}

// NewRankChangedMessage 排行榜变化通知, 只携带类型, 客户端收到后重新拉取
func NewRankChangedMessage() *RankChangedMessage {
	return &RankChangedMessage{Type: "rank_changed"}
}

type BalloonChangeMessage struct {
	UserID        int64  `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Nickname      string `json:"nickname"`
	ContestID     int64  `json:"contest_id"`
	ProblemID     int64  `json:"problem_id"`
	ProblemLetter string `json:"problem_letter"`
	Delivered     bool   `json:"delivered"`
}

// marshal 编码通知消息, 已经是字节串时原样返回
func marshal(payload any) ([]byte, error) {
	switch p := payload.(type) {
	case []byte:
		return p, nil
	case string:
		return []byte(p), nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload failed: %w", err)
	}
	return data, nil
}
