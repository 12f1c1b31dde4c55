package model

// Prize 奖牌等级
type Prize string

const (
	PrizeNone   Prize = ""
	PrizeGold   Prize = "gold"
	PrizeSilver Prize = "silver"
	PrizeBronze Prize = "bronze"
)

// UnrankedMark 不参与排名的选手显示的名次
const UnrankedMark = "*"

type GetRankingListParam struct {
	ContestCommonParam `json:",inline"`
	PageParam          `json:",inline"`
}

type RankingProblem struct {
	ProblemID int64  `json:"problem_id"`
	Letter    string `json:"letter"`
	Accept    bool   `json:"accept"`
	Score     int    `json:"score"`
	NAccept   int    `json:"naccept"`
	Time      int64  `json:"time"`
	Balloon   bool   `json:"balloon"`
}

type Ranking struct {
	Rank     string           `json:"rank"`
	Prize    Prize            `json:"prize,omitempty"`
	UserID   int64            `json:"user_id"`
	Uname    string           `json:"uname,omitempty"`
	Nickname string           `json:"nickname,omitempty"`
	Score    int              `json:"score"`
	Accept   int              `json:"accept"`
	Time     int64            `json:"time"`
	Problems []RankingProblem `json:"problems"`
}

type GetRankingListResponse struct {
	List     []Ranking `json:"list"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type ExportRankingParam struct {
	ContestCommonParam `json:",inline"`

	Format string `json:"format" form:"format" validate:"required,oneof=csv xlsx"`
}
