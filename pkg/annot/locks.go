package annot

import (
	"path/filepath"
	"sync"
)

// pathLocks 按文件路径串行化读写，避免读到写了一半的文件。
// 只在进程内生效，不做跨进程加锁。
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// key 将路径规范化为绝对路径，失败时退回到 Clean 结果
func (p *pathLocks) key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// lock 获取 path 的锁并返回释放函数
func (p *pathLocks) lock(path string) (unlock func()) {
	key := p.key(path)

	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &pathLock{}
		p.locks[key] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, key)
		}
		p.mu.Unlock()
	}
}

// size 当前持有或等待中的路径数量
func (p *pathLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
