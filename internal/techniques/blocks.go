package techniques

import (
	"fmt"
	"strings"
	"time"
)

const (
	triplePrimeBlock = `<system_role>You are an expert AI assistant with comprehensive knowledge and analytical capabilities.</system_role>

<developer_instructions>
- Provide thorough, accurate, and well-structured responses
- Use clear reasoning and evidence-based conclusions
- Maintain professional tone while being accessible
</developer_instructions>`

	zeroShotCoTBlock = `<reasoning_approach>
Think through this step-by-step. Break down the problem, analyze each component, and build toward a comprehensive solution.
</reasoning_approach>`

	fewShotBlock = `<examples>
Example approach:
1. Analyze the core request
2. Identify key components and relationships
3. Apply domain expertise
4. Synthesize comprehensive response
5. Validate against requirements
</examples>`

	selfConsistencyBlock = `<verification_process>
After providing your initial response, review it from multiple perspectives to ensure consistency and accuracy. Consider alternative approaches and validate your conclusions.
</verification_process>`

	treeOfThoughtBlock = `<reasoning_strategy>
Explore multiple solution paths:
1. Branch A: [Direct approach]
2. Branch B: [Alternative methodology]
3. Branch C: [Creative solution]
Evaluate each branch and select the most effective approach.
</reasoning_strategy>`

	reflectionBlock = `<reflection_process>
For each major step:
- THOUGHT: What am I trying to accomplish?
- ACTION: What specific steps will I take?
- OBSERVATION: What are the results and implications?
- REFINEMENT: How can I improve or adjust?
</reflection_process>`

	chainVerificationBlock = `<verification_chain>
After completing your response:
1. Review each major claim for accuracy
2. Check logical consistency throughout
3. Identify any gaps or weaknesses
4. Provide corrections or clarifications if needed
</verification_chain>`

	voiceAnchorBlock = `<voice_style>
Maintain a confident, analytical tone throughout. Be precise in language, thorough in explanation, and actionable in recommendations.
</voice_style>`

	contrastiveBlock = `<quality_contrast>
GOOD RESPONSE CHARACTERISTICS:
- Comprehensive and well-structured
- Evidence-based and specific
- Actionable and practical
- Clear and accessible

AVOID:
- Vague generalizations
- Unsupported claims
- Overly complex jargon
- Incomplete solutions
</quality_contrast>`

	negativeConstraintsBlock = `<constraints>
- Never provide incomplete or partial responses
- Avoid speculation without clearly marking it as such
- Don't ignore any part of the request
- Never compromise on accuracy for brevity
</constraints>`

	ethicalConstraintsBlock = `<ethical_guidelines>
Ensure all recommendations and advice:
- Respect privacy and data protection principles
- Consider potential unintended consequences
- Promote beneficial and responsible practices
- Align with professional and ethical standards
</ethical_guidelines>`

	decompositionBlock = `<decomposition_strategy>
Break complex requests into atomic components:
1. Identify core sub-tasks
2. Solve each component systematically
3. Integrate solutions coherently
4. Validate the complete solution
</decomposition_strategy>`

	programAidedBlock = `<computational_approach>
When applicable, use structured reasoning:
- Define variables and parameters clearly
- Apply logical operations step-by-step
- Show computational work when relevant
- Validate results through verification
</computational_approach>`

	rubricBlock = `<quality_rubric>
Evaluate your response on these criteria (1-10 scale):
- Completeness: Addresses all aspects of the request
- Accuracy: Information is correct and well-supported
- Clarity: Communication is clear and accessible
- Actionability: Provides practical, implementable guidance
Aim for 9+ on all criteria.
</quality_rubric>`

	metaPromptBlock = `<meta_optimization>
Before responding, consider: Is there a more effective way to approach this request? Could the original question be refined for better results? Apply any improvements to your response strategy.
</meta_optimization>`

	closingBlock = `<output_requirements>
Provide a comprehensive, well-structured response that fully addresses the request with expertise and clarity.
</output_requirements>`
)

// Expert personas available to role prompting. Selection is a
// best-effort keyword heuristic; the technical persona is the fallback.
var roles = map[string]string{
	"data":      "Chief Data Scientist with 15+ years in analytics and machine learning",
	"code":      "Senior Software Architect specializing in scalable systems",
	"business":  "Strategy Consultant with deep industry expertise",
	"creative":  "Creative Director with expertise in innovative problem-solving",
	"research":  "Research Scientist with extensive academic and industry experience",
	"technical": "Technical Expert with comprehensive domain knowledge",
}

var roleKeywords = []struct {
	role  string
	words []string
}{
	{"data", []string{"data", "analytics", "statistics"}},
	{"code", []string{"code", "programming", "software"}},
	{"business", []string{"business", "strategy", "market"}},
	{"creative", []string{"creative", "design", "innovation"}},
	{"research", []string{"research", "study", "analysis"}},
}

func selectRole(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, rk := range roleKeywords {
		for _, w := range rk.words {
			if strings.Contains(lower, w) {
				return roles[rk.role]
			}
		}
	}
	return roles["technical"]
}

func roleBlock(prompt string) string {
	return fmt.Sprintf(`<role_assignment>
You are a %s. Respond with the depth, perspective, and expertise expected from this role.
</role_assignment>`, selectRole(prompt))
}

func clockworkBlock(now time.Time) string {
	return fmt.Sprintf(`<temporal_context>
Current context: %s
Consider temporal relevance and provide current, up-to-date information when applicable.
</temporal_context>`, now.UTC().Format("2006-01-02 15:04 UTC"))
}

func xmlTaskBlock(prompt string) string {
	return fmt.Sprintf("<task>\n%s\n</task>", prompt)
}
