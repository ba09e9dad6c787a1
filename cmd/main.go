package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"lottery-engine/internal/config"
	"lottery-engine/internal/fusion"
	"lottery-engine/internal/logger"
	"lottery-engine/internal/lottery"
	"lottery-engine/internal/model"
	"lottery-engine/internal/stats"
	"lottery-engine/internal/strategy"
)

// App 应用程序主结构
type App struct {
	config   *config.Config
	game     lottery.Game
	stats    *stats.Statistics
	registry *strategy.Registry
	seed     int64
}

// NewApp 创建应用程序实例
func NewApp(configPath, historyPath string) (*App, error) {
	// 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %v", err)
	}

	// 初始化日志
	logger.InitLogger(cfg.App.LogLevel)
	fmt.Println("🚀 启动预测策略引擎...")

	// 解析玩法参数
	game, err := resolveGame(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve game: %v", err)
	}
	fmt.Printf("🎲 玩法: %s (%d选%d + %d选%d)\n",
		game.Name, game.MainMax, game.MainCount, game.BonusMax, game.BonusCount)

	// 加载历史快照
	history, err := loadHistory(historyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw history: %v", err)
	}
	if err := lottery.ValidateHistory(game, history); err != nil {
		return nil, fmt.Errorf("invalid draw history: %v", err)
	}
	fmt.Printf("📚 已加载 %d 期历史数据\n", len(history))

	// 构建分布统计，会话内只建一次
	st, err := stats.New(game, history)
	if err != nil {
		return nil, fmt.Errorf("failed to build statistics: %v", err)
	}
	fmt.Println("✅ 分布统计构建完成")

	seed := cfg.App.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	app := &App{
		config: cfg,
		game:   game,
		stats:  st,
		seed:   seed,
	}
	if err := app.buildRegistry(); err != nil {
		return nil, fmt.Errorf("failed to build strategy registry: %v", err)
	}

	fmt.Println("🎯 应用程序初始化完成")
	return app, nil
}

// resolveGame 按名称取预定义玩法，或使用显式参数
func resolveGame(cfg *config.Config) (lottery.Game, error) {
	if cfg.Game.Name != "" {
		return lottery.GameByName(cfg.Game.Name)
	}
	game := lottery.Game{
		Name:       "custom",
		MainMax:    cfg.Game.MainMax,
		MainCount:  cfg.Game.MainCount,
		BonusMax:   cfg.Game.BonusMax,
		BonusCount: cfg.Game.BonusCount,
	}
	if err := game.Validate(); err != nil {
		return lottery.Game{}, err
	}
	return game, nil
}

// drawRecordJSON 历史快照文件中的单条记录
type drawRecordJSON struct {
	Date    string `json:"date"`
	Numbers []int  `json:"numbers"`
	Bonus   []int  `json:"bonus"`
}

// loadHistory 从JSON文件加载历史快照，顺序与文件一致（最近优先）
func loadHistory(path string) ([]lottery.DrawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %v", err)
	}

	var raw []drawRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %v", err)
	}

	history := make([]lottery.DrawRecord, len(raw))
	for i, r := range raw {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			date, err = time.Parse(time.RFC3339, r.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q in history record %d", r.Date, i)
			}
		}
		history[i] = lottery.DrawRecord{Date: date, Numbers: r.Numbers, Bonus: r.Bonus}
	}
	return history, nil
}

// buildRegistry 注册全部策略与模型生成器，每个策略持有独立种子的随机源
func (a *App) buildRegistry() error {
	registry := strategy.NewRegistry()
	params := a.config.Params

	strategies := []strategy.Strategy{
		strategy.NewFrequency(a.game, a.stats, params, a.strategyRNG(0)),
		strategy.NewMixed(a.game, a.stats, params, a.strategyRNG(1)),
		strategy.NewTemporal(a.game, a.stats, params, a.strategyRNG(2)),
		strategy.NewStratified(a.game, a.stats, params, a.strategyRNG(3)),
		strategy.NewCoverage(a.game, a.stats, params, a.strategyRNG(4)),
		strategy.NewRiskReward(a.game, a.stats, params, a.strategyRNG(5)),
		strategy.NewBias(a.game, a.stats, params, a.strategyRNG(6)),
		model.NewBayesian(a.game, a.stats, params, a.strategyRNG(7)),
		model.NewMarkov(a.game, a.stats, params, a.strategyRNG(8)),
		model.NewTimeSeries(a.game, a.stats, params, a.strategyRNG(9)),
	}
	for _, s := range strategies {
		if err := registry.Register(s); err != nil {
			return err
		}
	}

	a.registry = registry
	return nil
}

// strategyRNG 为每个策略派生独立的随机源，避免并发共享状态
func (a *App) strategyRNG(offset int64) *rand.Rand {
	return rand.New(rand.NewSource(a.seed + offset))
}

// strategyResult 单个策略的生成结果
type strategyResult struct {
	name   string
	combos []lottery.Combination
	err    error
}

// Run 执行一次完整的生成流水线
func (a *App) Run() ([]lottery.Combination, error) {
	fmt.Printf("🔄 运行策略: %v\n", a.config.Engine.Strategies)

	pools, err := a.runStrategies()
	if err != nil {
		return nil, err
	}

	var final []lottery.Combination
	if a.config.Engine.Fusion.Enabled && len(pools) >= 2 {
		final, err = a.fuse(pools)
		if err != nil {
			return nil, err
		}
	} else {
		for _, pool := range pools {
			final = append(final, pool.Combos...)
		}
		sort.SliceStable(final, func(i, j int) bool {
			return final[i].Score > final[j].Score
		})
	}

	// 输出前整批校验
	if err := lottery.ValidateBatch(a.game, final); err != nil {
		return nil, fmt.Errorf("output batch failed validation: %v", err)
	}
	return final, nil
}

// runStrategies 并发运行配置的策略集，每个策略写独立的结果槽
func (a *App) runStrategies() ([]fusion.Pool, error) {
	names := a.config.Engine.Strategies
	results := make([]strategyResult, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		s, err := a.registry.Get(name)
		if err != nil {
			return nil, err
		}

		wg.Add(1)
		go func(slot int, s strategy.Strategy) {
			defer wg.Done()
			combos, err := s.Generate(a.config.Engine.Combinations)
			results[slot] = strategyResult{name: s.Name(), combos: combos, err: err}
		}(i, s)
	}
	wg.Wait()

	pools := make([]fusion.Pool, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("strategy %s failed: %v", r.name, r.err)
		}
		fmt.Printf("✅ %s 生成 %d 个组合\n", r.name, len(r.combos))
		pools = append(pools, fusion.Pool{Name: r.name, Combos: r.combos})
	}
	return pools, nil
}

// fuse 融合各策略的输出并做多样性选择
func (a *App) fuse(pools []fusion.Pool) ([]lottery.Combination, error) {
	fmt.Println("🔀 融合各策略输出...")
	rng := a.strategyRNG(100)
	fusionCfg := a.config.Engine.Fusion

	var candidates []lottery.Combination
	for _, pool := range pools {
		candidates = append(candidates, pool.Combos...)
	}

	// 跨策略交叉：每轮轮换源池次序
	split := crossSplit(a.game.MainCount, min(len(pools), 3))
	for i := 0; i < fusionCfg.Count; i++ {
		rotated := rotatePools(pools, i)[:len(split)]
		combo, err := fusion.CrossStrategy(rng, a.game, rotated, split)
		if err != nil {
			return nil, fmt.Errorf("cross-strategy fusion failed: %v", err)
		}
		candidates = append(candidates, combo)
	}

	// 两个最高分组合再做位次平均与频率加权融合
	top := topTwo(candidates)
	if len(top) == 2 {
		averaged, err := fusion.PositionalAverage(rng, a.game, top[0], top[1])
		if err != nil {
			return nil, fmt.Errorf("positional-average fusion failed: %v", err)
		}
		candidates = append(candidates, averaged)

		weighted, err := fusion.FrequencyWeighted(rng, a.game, top[0], top[1], a.stats, a.config.Params.RecentWeight)
		if err != nil {
			return nil, fmt.Errorf("frequency-weighted fusion failed: %v", err)
		}
		candidates = append(candidates, weighted)
	}

	selected, err := fusion.SelectDiverse(candidates, fusionCfg.Count, fusionCfg.NumberCap, fusionCfg.StrategyCap)
	if err != nil {
		return nil, fmt.Errorf("diversity selection failed: %v", err)
	}
	fmt.Printf("✅ 融合完成，保留 %d 个组合\n", len(selected))
	return selected, nil
}

// crossSplit 把主号码名额拆给前几个源池，前面的池多拿
func crossSplit(mainCount, pools int) []int {
	split := make([]int, pools)
	for i := 0; i < mainCount; i++ {
		split[i%pools]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(split)))
	return split
}

// rotatePools 轮换源池次序，让每轮交叉有不同的主导池
func rotatePools(pools []fusion.Pool, shift int) []fusion.Pool {
	n := len(pools)
	rotated := make([]fusion.Pool, n)
	for i := range pools {
		rotated[i] = pools[(i+shift)%n]
	}
	return rotated
}

// topTwo 取分数最高的两个组合
func topTwo(combos []lottery.Combination) []lottery.Combination {
	sorted := make([]lottery.Combination, len(combos))
	copy(sorted, combos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > 2 {
		sorted = sorted[:2]
	}
	return sorted
}

// writeOutput 输出标准JSON记录到文件或标准输出
func writeOutput(combos []lottery.Combination, outputPath string) error {
	data, err := json.MarshalIndent(combos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %v", err)
	}

	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %v", err)
	}
	fmt.Printf("💾 结果已写入 %s\n", outputPath)
	return nil
}

func main() {
	// 参数: 配置文件 历史快照 [输出文件]
	configPath := "configs/config.yaml"
	historyPath := "data/history.json"
	outputPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		historyPath = os.Args[2]
	}
	if len(os.Args) > 3 {
		outputPath = os.Args[3]
	}

	app, err := NewApp(configPath, historyPath)
	if err != nil {
		fmt.Printf("❌ 应用初始化失败: %v\n", err)
		os.Exit(1)
	}

	combos, err := app.Run()
	if err != nil {
		fmt.Printf("❌ 生成失败: %v\n", err)
		os.Exit(1)
	}

	for _, combo := range combos {
		fmt.Printf("🎫 %s\n", combo.String())
	}

	if err := writeOutput(combos, outputPath); err != nil {
		fmt.Printf("❌ 输出失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ 预测生成完成")
}
