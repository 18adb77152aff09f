package pkg_mgr

// Kind 标识一种 Node.js 包管理器
// 零值 Unknown 表示目录中没有可识别的 lockfile
type Kind int

const (
	Unknown Kind = iota
	Npm
	Yarn
	Pnpm
)

// Name 返回包管理器可执行文件的名称 (e.g., "npm", "yarn", "pnpm")
func (k Kind) Name() string {
	switch k {
	case Npm:
		return "npm"
	case Yarn:
		return "yarn"
	case Pnpm:
		return "pnpm"
	}
	return ""
}

// Lockfile 返回该包管理器写入的 lockfile 文件名
func (k Kind) Lockfile() string {
	for _, r := range rules {
		if r.Kind == k {
			return r.Filename
		}
	}
	return ""
}

func (k Kind) String() string {
	if name := k.Name(); name != "" {
		return name
	}
	return "unknown"
}

// LockfileRule 把一个精确的文件名映射到包管理器
type LockfileRule struct {
	Filename string
	Kind     Kind
}

// rules 在进程生命周期内固定，不可由用户配置
var rules = []LockfileRule{
	{Filename: "yarn.lock", Kind: Yarn},
	{Filename: "pnpm-lock.yaml", Kind: Pnpm},
	{Filename: "package-lock.json", Kind: Npm},
}

// Rules 返回 lockfile 规则表的副本
func Rules() []LockfileRule {
	out := make([]LockfileRule, len(rules))
	copy(out, rules)
	return out
}

// KindForLockfile 按文件名精确匹配规则，未命中返回 Unknown
func KindForLockfile(filename string) Kind {
	for _, r := range rules {
		if r.Filename == filename {
			return r.Kind
		}
	}
	return Unknown
}
