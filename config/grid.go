package config

// Grid expands cfg into one config per (buy, sell) threshold pair. A
// parameter that is not marked Optimize contributes only its current value.
// Pairs where buy >= sell are skipped.
func Grid(cfg EvaluatorConfig) []EvaluatorConfig {
	buys := []int{cfg.BuyRSI.Value}
	if cfg.BuyRSI.Optimize {
		buys = cfg.BuyRSI.Range()
	}
	sells := []int{cfg.SellRSI.Value}
	if cfg.SellRSI.Optimize {
		sells = cfg.SellRSI.Range()
	}
	out := make([]EvaluatorConfig, 0, len(buys)*len(sells))
	for _, b := range buys {
		for _, s := range sells {
			if b >= s {
				continue
			}
			c := cfg
			c.BuyRSI.Value = b
			c.SellRSI.Value = s
			out = append(out, c)
		}
	}
	return out
}
