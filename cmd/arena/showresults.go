package main

import (
	"context"
	"math"
)

func showResults(
	ctx context.Context,
	gameResults <-chan gameResult,
) error {
	var games = 0
	var wins, losses, draws int
	for gameResult := range gameResults {
		games++
		logger.Info().
			Stringer("game", gameResult.gameInfo.id).
			Int("number", gameResult.gameInfo.gameNumber).
			Str("result", gameResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Int("plies", gameResult.plies).
			Msg("finished game")

		if gameResult.result == gameResultDraw {
			draws++
		} else if gameResult.result == gameResultAttackersWin && gameResult.gameInfo.engineAIsAttacker ||
			gameResult.result == gameResultDefendersWin && !gameResult.gameInfo.engineAIsAttacker {
			wins++
		} else {
			losses++
		}
		var stat = computeStat(wins, losses, draws)
		logger.Info().
			Int("wins", wins).
			Int("losses", losses).
			Int("draws", draws).
			Int("games", games).
			Float64("score", stat.winningFraction).
			Float64("eloDifference", stat.eloDifference).
			Float64("los", stat.los).
			Msg("standings")
	}
	return nil
}

type gameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

// https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) gameStatistics {
	var games = wins + losses + draws
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	return gameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}

func gameResultString(v int) string {
	if v == gameResultAttackersWin {
		return "1-0"
	}
	if v == gameResultDefendersWin {
		return "0-1"
	}
	return "1/2-1/2"
}
