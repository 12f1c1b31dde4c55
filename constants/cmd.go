package constants

const (
	CreateContestPath  = "/CreateContest"  // 创建比赛
	EditContestPath    = "/EditContest"    // 编辑比赛
	GetContestPath     = "/GetContest"     // 获取比赛
	GetContestListPath = "/GetContestList" // 获取比赛列表
	AttendContestPath  = "/AttendContest"  // 参加比赛
	GetStatusMapPath   = "/GetStatusMap"   // 获取用户在多场比赛中的状态
	ConvertProblemPath = "/ConvertProblem" // 题目 id 与题号互转
)

const (
	UpdateStatusPath = "/UpdateStatus" // 提交评测结果, 一般由评测结果消费者调用
	GetStatusPath    = "/GetStatus"    // 获取选手状态
	RemoveStatusPath = "/RemoveStatus" // 删除选手状态
	SetRankedPath    = "/SetRanked"    // 设置选手是否参与排名
)

const (
	SetBalloonPath            = "/SetBalloon"            // 设置气球状态
	GetPendingBalloonListPath = "/GetPendingBalloonList" // 获取待发放气球列表
)

const (
	GetRankingListPath = "/GetRankingList" // 获取排行榜
	ExportRankingPath  = "/ExportRanking"  // 导出排行榜
)

const (
	NotificationPath = "/ws/notification" // 通知推送
	MetricsPath      = "/metrics"
	HealthPath       = "/health"
)
