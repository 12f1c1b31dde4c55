package model

// User 用户目录中的用户信息
type User struct {
	ID       int64  `json:"id"`
	Uname    string `json:"uname"`    // 用户名(学号)
	Nickname string `json:"nickname"` // 展示名称, 取自真实姓名
}
