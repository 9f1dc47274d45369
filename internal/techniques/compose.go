package techniques

import (
	"strings"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/models"
)

// Composer assembles technique blocks around a prompt. The clock is
// injectable so timestamp-bearing techniques stay deterministic in
// tests.
type Composer struct {
	now func() time.Time
}

func NewComposer() *Composer {
	return &Composer{now: time.Now}
}

// NewComposerWithClock fixes the composer's clock.
func NewComposerWithClock(now func() time.Time) *Composer {
	return &Composer{now: now}
}

// Compose applies the enabled techniques to the original text.
// Unknown identifiers are ignored. The result depends only on the set
// of enabled techniques, never on their selection order.
func (c *Composer) Compose(original string, enabled []string, mode models.Mode) string {
	if mode == models.ModeCompress {
		return Compress(original, enabled)
	}

	on := make(map[string]bool, len(enabled))
	for _, id := range enabled {
		if _, ok := byID[id]; ok {
			on[id] = true
		}
	}

	task := original
	if on["xml_schema"] {
		task = xmlTaskBlock(task)
	}

	var context, instructions, constraints []string

	if on["triple_prime"] {
		context = append(context, triplePrimeBlock)
	}
	if on["few_shot_cot"] {
		context = append(context, fewShotBlock)
	}
	if on["role_prompting"] {
		context = append(context, roleBlock(task))
	}
	if on["voice_anchor"] {
		context = append(context, voiceAnchorBlock)
	}
	if on["contrastive"] {
		context = append(context, contrastiveBlock)
	}
	if on["clockwork"] {
		context = append(context, clockworkBlock(c.now()))
	}

	if on["zero_shot_cot"] {
		instructions = append(instructions, zeroShotCoTBlock)
	}
	if on["self_consistency"] {
		instructions = append(instructions, selfConsistencyBlock)
	}
	if on["tree_of_thought"] {
		instructions = append(instructions, treeOfThoughtBlock)
	}
	if on["reflection"] {
		instructions = append(instructions, reflectionBlock)
	}
	if on["chain_verification"] {
		instructions = append(instructions, chainVerificationBlock)
	}
	if on["iterative_decomposition"] {
		instructions = append(instructions, decompositionBlock)
	}
	if on["program_aided"] {
		instructions = append(instructions, programAidedBlock)
	}
	if on["rubric_critique"] {
		instructions = append(instructions, rubricBlock)
	}
	if on["meta_prompts"] {
		instructions = append(instructions, metaPromptBlock)
	}

	if on["negative_prompts"] {
		constraints = append(constraints, negativeConstraintsBlock)
	}
	if on["ethical_constraints"] {
		constraints = append(constraints, ethicalConstraintsBlock)
	}

	sections := make([]string, 0, len(context)+len(instructions)+len(constraints)+2)
	sections = append(sections, context...)
	sections = append(sections, task)
	sections = append(sections, instructions...)
	sections = append(sections, constraints...)
	sections = append(sections, closingBlock)

	return strings.Join(sections, "\n\n")
}
