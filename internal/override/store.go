// Package override 用户手工覆盖：按规范化标题存的rank字符串，永远优先于自动匹配
package override

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/lib/pq"

	"venue-rank-go/internal/normalize"
)

// BlobBackend 覆盖数据的持久化后端：一个不透明的文本blob
// 后端不需要理解内部结构
type BlobBackend interface {
	Read() ([]byte, error) // 不存在时返回(nil, nil)
	Write(data []byte) error
}

// Store 覆盖存储，内存map + 同步持久化
// 每次变更在返回前写回后端，崩溃不会丢刚写入的覆盖
type Store struct {
	mu      sync.RWMutex
	m       map[string]string
	backend BlobBackend
}

// NewStore 创建覆盖存储（需要调用Load）
func NewStore(backend BlobBackend) *Store {
	return &Store{
		m:       make(map[string]string),
		backend: backend,
	}
}

// Load 从后端加载
// blob缺失、为空或损坏时自愈：重置为空map并写回空状态，不报错
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Read()
	if err != nil {
		return fmt.Errorf("failed to read override blob: %w", err)
	}

	s.m = make(map[string]string)
	if len(data) == 0 {
		return s.persist()
	}
	if err := json.Unmarshal(data, &s.m); err != nil {
		log.Printf("[Override] corrupt override blob, resetting to empty: %v", err)
		s.m = make(map[string]string)
		return s.persist()
	}
	return nil
}

// Save 显式写回
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// persist 调用方必须持有写锁
func (s *Store) persist() error {
	data, err := json.Marshal(s.m)
	if err != nil {
		return err
	}
	return s.backend.Write(data)
}

// Set 设置覆盖并同步持久化
func (s *Store) Set(title, rank string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[normalize.Key(title)] = rank
	return s.persist()
}

// Remove 删除覆盖并同步持久化
func (s *Store) Remove(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, normalize.Key(title))
	return s.persist()
}

// Get 查询覆盖（查询键同样先规范化）
func (s *Store) Get(title string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rank, ok := s.m[normalize.Key(title)]
	return rank, ok
}

// Has 是否存在覆盖
func (s *Store) Has(title string) bool {
	_, ok := s.Get(title)
	return ok
}

// Count 覆盖条数
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// All 所有覆盖的拷贝（给展示层用）
func (s *Store) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}

// ClearAll 清空全部覆盖并同步持久化
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]string)
	return s.persist()
}

// ========== 文件后端 ==========

// FileBackend 把blob存成一个JSON文件
type FileBackend struct {
	path string
}

// NewFileBackend 创建文件后端
func NewFileBackend(path string) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create override directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Read 读取blob，文件不存在返回(nil, nil)
func (b *FileBackend) Read() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Write 原子写：先写临时文件再rename，中断不会留下半个blob
func (b *FileBackend) Write(data []byte) error {
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

// ========== PostgreSQL后端 ==========

// PostgresBackend 把blob存在单行表里（和文件后端语义一致）
type PostgresBackend struct {
	db *sql.DB
}

// NewPostgresBackend 创建PostgreSQL后端并建表
func NewPostgresBackend(databaseURL string) (*PostgresBackend, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS venue_overrides (
		id INT PRIMARY KEY CHECK (id = 1),
		blob TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create override table: %w", err)
	}

	return &PostgresBackend{db: db}, nil
}

// Read 读取blob，没有行时返回(nil, nil)
func (b *PostgresBackend) Read() ([]byte, error) {
	var blob string
	err := b.db.QueryRow(`SELECT blob FROM venue_overrides WHERE id = 1`).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(blob), nil
}

// Write 整行upsert，事务性替换
func (b *PostgresBackend) Write(data []byte) error {
	query := `
	INSERT INTO venue_overrides (id, blob, updated_at)
	VALUES (1, $1, NOW())
	ON CONFLICT (id)
	DO UPDATE SET blob = $1, updated_at = NOW()
	`
	_, err := b.db.Exec(query, string(data))
	return err
}

// Close 关闭数据库连接
func (b *PostgresBackend) Close() error {
	return b.db.Close()
}
