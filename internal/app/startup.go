// Package app 保存宿主程序启动时确定、之后只读的状态。
package app

import "strings"

// StartupFile 进程启动时由操作系统传入的文件路径。
// 只在构造时确定一次，之后只读，不需要加锁。
type StartupFile struct {
	path string
}

// NewStartupFile 用给定路径构造，空路径表示没有启动文件
func NewStartupFile(path string) StartupFile {
	return StartupFile{path: strings.TrimSpace(path)}
}

// FromArgs 取位置参数中的第一个作为启动文件
func FromArgs(args []string) StartupFile {
	if len(args) == 0 {
		return StartupFile{}
	}
	return NewStartupFile(args[0])
}

// Path 返回启动文件路径；没有时第二个返回值为 false
func (s StartupFile) Path() (string, bool) {
	return s.path, s.path != ""
}
