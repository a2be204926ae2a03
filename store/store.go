// Package store 提供 KV 存储实现与商品/订单/收藏数据的存取适配。
// 内存实现用于测试与原型，Redis 实现用于线上；两者共享同一套
// core.Store / core.KeyValueStore 接口。
package store

import "github.com/shopkit/recommend/core"

// 复用 core 中的存储错误，调用方统一用 core.IsStoreNotFound 判断。
var (
	ErrNotFound     = core.ErrStoreNotFound
	ErrNotSupported = core.ErrStoreNotSupported
)
