package botcmds

import (
	"context"
	"fmt"
	"unicode/utf8"

	"calcbot/internal/botenv"
	"calcbot/internal/calcdb"
	"calcbot/internal/calculator"

	"github.com/bwmarrin/discordgo"
	logrus "github.com/sirupsen/logrus"
)

var calcOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "expression",
	Description: "Mathematical expression to calculate",
	Required:    true,
}

var CalcHelp = discordgo.MessageEmbed{
	Title: "Calc Command",
	Description: "*[prefix]calc [expression]*\n\n" +
		"Evaluates an arithmetic expression.\n" +
		"Operators: `+ - * / % ^ ! << >>` and parentheses.\n" +
		"Functions: `ln(x)`, and `log(x)` which is 10^x.\n" +
		"Constants: `e`, `pi`, `PI`.\n" +
		"Ex: `calc!calc (2+3)*4^2`",
}

// InvalidExpression is the reply when there is nothing to evaluate.
const InvalidExpression = "Invalid expression"

// [prefix]calc [expression]
// Evaluates the expression and replies "<expression> = <result>". Results
// are cached, and every evaluation is kept in the author's history.
func Calc(ctx context.Context, env *botenv.BotEnv, req Request) Response {
	expr := req.Args
	if expr == "" {
		return Response{Content: InvalidExpression}
	}
	if limit := env.Config.MaxExpressionLength; utf8.RuneCountInString(expr) > limit {
		return Response{Content: fmt.Sprintf("Expression is too long (max %d characters).", limit)}
	}
	log := env.Log.WithFields(logrus.Fields{
		"author":     req.AuthorID,
		"expression": expr,
	})

	result, err := evaluate(env, log, expr)
	record(env, log, calcdb.Calculation{
		AuthorID:   req.AuthorID,
		ChannelID:  req.ChannelID,
		Expression: expr,
		Result:     result,
		Err:        errString(err),
	})
	if err != nil {
		log.WithError(err).Info("Expression rejected.")
		return Response{Content: fmt.Sprintf("Could not evaluate %s: %s", expr, err)}
	}

	log.WithField("result", result).Debug("Calc command processed.")
	return Response{Content: fmt.Sprintf("%s = %s", expr, calcdb.FormatResult(result))}
}

func evaluate(env *botenv.BotEnv, log *logrus.Entry, expr string) (float64, error) {
	if env.Cache != nil {
		v, ok, err := env.Cache.Get(expr)
		if err != nil {
			log.WithError(err).Warn("Cache lookup failed.")
		} else if ok {
			return v, nil
		}
	}

	v, err := calculator.Evaluate(expr)
	if err != nil {
		return 0, err
	}

	if env.Cache != nil {
		if err := env.Cache.Set(expr, v); err != nil {
			log.WithError(err).Warn("Cache store failed.")
		}
	}
	return v, nil
}

func record(env *botenv.BotEnv, log *logrus.Entry, c calcdb.Calculation) {
	if env.History == nil {
		return
	}
	if err := env.History.Save(&c); err != nil {
		log.WithError(err).Error("Saving calculation.")
		return
	}
	if env.Index != nil {
		if err := env.Index.Add(c); err != nil {
			log.WithError(err).Error("Indexing calculation.")
		}
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
