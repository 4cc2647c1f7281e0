package app

import "context"

// Hook 生命周期钩子函数.
type Hook func(ctx context.Context) error

// runHooks 依次执行钩子，遇到错误立即返回.
func runHooks(ctx context.Context, hooks []Hook) error {
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			return err
		}
	}
	return nil
}

// BeforeStart 添加启动前钩子，返回错误会中止 Run.
func BeforeStart(hook Hook) Option {
	return func(o *options) { o.beforeStart = append(o.beforeStart, hook) }
}

// AfterStart 添加启动后钩子.
func AfterStart(hook Hook) Option {
	return func(o *options) { o.afterStart = append(o.afterStart, hook) }
}

// BeforeStop 添加停止前钩子.
func BeforeStop(hook Hook) Option {
	return func(o *options) { o.beforeStop = append(o.beforeStop, hook) }
}

// AfterStop 添加停止后钩子.
func AfterStop(hook Hook) Option {
	return func(o *options) { o.afterStop = append(o.afterStop, hook) }
}
