package feedback

// AnalysisSystemPrompt frames the first round-trip.
const AnalysisSystemPrompt = "You are an expert marketing analyst who specializes in interpreting client feedback to improve marketing content."

// AnalysisPrompt is filled with product, description, audience, goals, ad
// type, numbered variations, feedback text and an optional score line.
const AnalysisPrompt = `As an expert marketing analyst, analyze the following client feedback on a marketing ad:

CAMPAIGN INFORMATION:
Product/Service: %s
Description: %s
Target Audience: %s
Campaign Goals: %s

AD CONTENT:
Ad Type: %s
Ad Variations:
%s

CLIENT FEEDBACK:
%s
%s

Analyze this feedback and provide:

1. Key Issues: Identify the main issues or concerns raised in the feedback (if any)

2. Positive Aspects: Identify what was well-received (if anything)

3. Specific Elements to Change: List specific elements of the ad that should be modified based on the feedback

4. Elements to Keep: List specific elements of the ad that should be preserved

5. Suggested Improvements: Provide 3-5 specific, actionable suggestions for improving the ad based on the feedback

6. Sentiment Analysis: Categorize the overall sentiment of the feedback (Positive, Neutral, Negative, Mixed)

Format your analysis in a structured way that could be easily parsed.`

// ParserSystemPrompt is shared by both structuring calls.
const ParserSystemPrompt = "You are a precision parser that converts text analysis into clean JSON format."

// StructureAnalysisPrompt turns the free-text analysis into JSON.
const StructureAnalysisPrompt = `Parse the following feedback analysis into a clean, structured JSON format:

%s

The JSON should have these main sections:
- key_issues (array of strings)
- positive_aspects (array of strings)
- elements_to_change (array of strings)
- elements_to_keep (array of strings)
- suggested_improvements (array of strings)
- sentiment (string)

Format as valid JSON only with no other text.`

// RecommendationSystemPrompt frames the recommendation round-trip.
const RecommendationSystemPrompt = "You are an expert marketing copywriter who specializes in providing specific, actionable recommendations to improve ad content."

// RecommendationPrompt is filled with ad type, product, audience, the
// bulleted key issues and the bulleted elements to change.
const RecommendationPrompt = `As an expert marketing copywriter, provide specific recommendations to improve a %s based on the following analysis:

Product/Service: %s
Target Audience: %s

Key issues identified:
%s

Elements to change:
%s

For each issue or element to change, provide:
1. A specific, actionable recommendation for improvement
2. A brief example or template of how this might look in practice

Provide 5 specific recommendations in total, prioritizing the most important issues.
Format each recommendation as a separate object with 'recommendation' and 'example' fields.`

// StructureRecommendationsPrompt turns the recommendations into a JSON array.
const StructureRecommendationsPrompt = `Parse the following recommendations into a JSON array where each object has 'recommendation' and 'example' fields:

%s

Format as valid JSON array only with no other text.`

// ReflectionSystemPrompt frames the reflection round-trip.
const ReflectionSystemPrompt = "You are an expert marketing strategist who specializes in analyzing client feedback to extract actionable insights."

// ReflectionPrompt is filled with product, description, audience, goals,
// ad type, numbered variations, feedback text and an optional score line.
const ReflectionPrompt = `As a marketing expert, analyze the following client feedback on a marketing ad and extract insights for improvement:

Product/Service: %s
Description: %s
Target Audience: %s
Campaign Goals: %s

Ad Type: %s
Ad Variations:
%s

Client Feedback: %s
%s

Provide the following reflections:

1. Key Insights: What are 3-5 key insights from this feedback that can improve future ads?

2. Strengths: What aspects of the ad were effective according to the feedback?

3. Areas for Improvement: What specific aspects need improvement?

4. Action Items: What are 3-4 specific actions to take in future ads for this client?

5. Pattern Recognition: Does this feedback reveal any patterns or preferences about this client that should be remembered for future work?`

// StructureReflectionPrompt turns a reflection into JSON.
const StructureReflectionPrompt = `Parse the following marketing ad feedback reflection into a structured JSON format:

%s

Format the response as valid JSON with the following structure:
{
    "key_insights": ["insight 1", "insight 2"],
    "strengths": ["strength 1", "strength 2"],
    "areas_for_improvement": ["area 1", "area 2"],
    "action_items": ["action 1", "action 2"],
    "pattern_recognition": ["pattern 1", "pattern 2"]
}

Format as valid JSON only with no other text.`

// SuggestionSystemPrompt frames both suggestion prompts.
const SuggestionSystemPrompt = "You are an expert marketing strategist who specializes in providing actionable suggestions to improve marketing content based on client preferences."

// StrategySuggestionPrompt is filled with ad type, numbered variations and
// the bulleted key insights, strengths, areas to improve and client
// preferences of the brief's strategy.
const StrategySuggestionPrompt = `As a marketing expert, provide specific suggestions to improve the following ad based on what we've learned about this client's preferences:

Ad Type: %s

Ad Variations:
%s

What we've learned about this client:

Key Insights:
%s

Strengths to Maintain:
%s

Areas to Improve:
%s

Client Preferences:
%s

Provide 5-7 specific, actionable suggestions to improve this ad based on these learnings. For each suggestion:
1. Describe the change to make
2. Explain how it addresses a known client preference or feedback pattern
3. Provide a specific example of the change applied to the ad content`

// GenericSuggestionPrompt is used while a brief has no strategy yet. It is
// filled with ad type and numbered variations.
const GenericSuggestionPrompt = `As a marketing expert, provide specific suggestions to improve the following ad:

Ad Type: %s

Ad Variations:
%s

Provide 5-7 specific, actionable suggestions to improve this ad based on best practices in marketing. For each suggestion:
1. Describe the change to make
2. Explain how it improves the effectiveness of the ad
3. Provide a specific example of the change applied to the ad content`
