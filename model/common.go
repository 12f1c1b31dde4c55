package model

type CommonParam struct {
	Operator int64  `json:"-" form:"-"`
	DomainID string `json:"-" form:"-"`
}

type CommonParamInterface interface {
	SetOperator(op int64)
	SetDomainID(domainID string)
}

func (p *CommonParam) SetOperator(op int64) {
	p.Operator = op
}

func (p *CommonParam) SetDomainID(domainID string) {
	p.DomainID = domainID
}

// ContestCommonParam 比赛相关接口的公共参数
type ContestCommonParam struct {
	CommonParam
	ContestID int64 `json:"contest_id" form:"contest_id" validate:"required,min=1"`
}

type PageParam struct {
	Page     int `json:"page" form:"page" validate:"required,min=1"`
	PageSize int `json:"page_size" form:"page_size" validate:"required,min=10,max=100"`
}

// Offset 返回分页偏移量
func (p PageParam) Offset() int {
	return (p.Page - 1) * p.PageSize
}
