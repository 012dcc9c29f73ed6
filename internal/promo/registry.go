package promo

// Registry 按规范化优惠码查找记录
type Registry interface {
	Lookup(normalized string) (*Code, bool)
}

// LookupFunc 将函数适配为 Registry
type LookupFunc func(normalized string) (*Code, bool)

// Lookup 实现 Registry
func (f LookupFunc) Lookup(normalized string) (*Code, bool) {
	if f == nil {
		return nil, false
	}
	return f(normalized)
}

// Snapshot 内存中的优惠码快照，按规范化后的优惠码建立索引
type Snapshot struct {
	byCode map[string]Code
}

// NewSnapshot 基于记录列表创建快照，重复的优惠码以后出现者为准
func NewSnapshot(codes []Code) *Snapshot {
	s := &Snapshot{byCode: make(map[string]Code, len(codes))}
	for _, c := range codes {
		s.byCode[Normalize(c.Code)] = c
	}
	return s
}

// Lookup 实现 Registry，返回记录副本
func (s *Snapshot) Lookup(normalized string) (*Code, bool) {
	if s == nil {
		return nil, false
	}
	c, ok := s.byCode[Normalize(normalized)]
	if !ok {
		return nil, false
	}
	return &c, true
}

// Len 返回快照中的记录数
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byCode)
}

// Chain 按顺序查询多个 Registry，返回第一个命中的记录
type Chain []Registry

// Lookup 实现 Registry
func (c Chain) Lookup(normalized string) (*Code, bool) {
	for _, registry := range c {
		if registry == nil {
			continue
		}
		if code, ok := registry.Lookup(normalized); ok {
			return code, true
		}
	}
	return nil, false
}
